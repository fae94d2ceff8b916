package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/platform/config"
	"github.com/SscSPs/billing_ledger/internal/utils"
)

// authService checks the single configured operator account and issues JWTs.
type authService struct {
	BaseService
	cfg *config.Config
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, base BaseService) portssvc.AuthSvcFacade {
	return &authService{BaseService: base, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash)
	if !userOK || !passOK {
		s.LogError(ctx, apperrors.ErrUnauthorized, "Login rejected", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("invalid username or password: %w", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.IssueAccessToken(username, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.LogInfo(ctx, "Operator logged in", slog.String("username", username))
	return token, expiresAt, nil
}
