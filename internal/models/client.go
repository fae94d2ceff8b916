package models

import "github.com/shopspring/decimal"

// Client is the row shape of the clients table.
type Client struct {
	ClientID       string          `db:"client_id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	Address        string          `db:"address"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	AuditFields
}
