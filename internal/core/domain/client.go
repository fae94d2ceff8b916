package domain

import "github.com/shopspring/decimal"

// Client is a billed party. OpeningBalance seeds the running balance of the client's journal.
type Client struct {
	ClientID       string          `json:"clientID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AuditFields
}
