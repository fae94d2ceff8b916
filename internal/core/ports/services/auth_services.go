package services

import (
	"context"
	"time"
)

// AuthSvcFacade issues access tokens for the single configured operator.
type AuthSvcFacade interface {
	// Login checks the credentials and returns a signed token with its expiry,
	// or apperrors.ErrUnauthorized.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}
