package repositories

import (
	"context"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
)

// ReceiptFilter narrows receipt listings.
type ReceiptFilter struct {
	ClientID string
	Limit    int
	Offset   int
}

// ReceiptReader defines read operations for receipts
type ReceiptReader interface {
	// FindReceiptByID loads a receipt with its transactions in insertion order.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// ListReceipts returns receipts newest first, with their transactions.
	ListReceipts(ctx context.Context, filter ReceiptFilter) ([]domain.Receipt, error)
}

// ReceiptWriter defines write operations for receipts
type ReceiptWriter interface {
	// LockReceipt reads the receipt with its transactions and holds a row lock
	// on it until the transaction ends.
	LockReceipt(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// SaveReceipt inserts the receipt row and its transactions.
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error

	// UpdateReceipt rewrites the receipt's own fields.
	UpdateReceipt(ctx context.Context, receipt domain.Receipt) error

	// ReplaceTransactions deletes every transaction of the receipt and inserts txns.
	ReplaceTransactions(ctx context.Context, receiptID string, txns []domain.Transaction) error

	// DeleteReceipt removes the receipt; its transactions go with it.
	DeleteReceipt(ctx context.Context, receiptID string) error
}

// ReceiptRepositoryFacade combines all receipt-related repository interfaces
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptWriter
}
