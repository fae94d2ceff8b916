package services

import (
	"context"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/dto"
)

// ReceiptReaderSvc defines read operations for receipts
type ReceiptReaderSvc interface {
	GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, params dto.ListReceiptsParams) ([]domain.Receipt, error)
}

// ReceiptWriterSvc mutates a receipt together with its journal entry and the
// balances of the payment methods it touches, all in one transaction.
type ReceiptWriterSvc interface {
	CreateReceipt(ctx context.Context, req dto.ReceiptRequest, creatorUserID string) (*domain.Receipt, error)

	// UpdateReceipt reverts the old transactions' balance effects before applying the new ones.
	UpdateReceipt(ctx context.Context, receiptID string, req dto.ReceiptRequest, userID string) (*domain.Receipt, error)

	DeleteReceipt(ctx context.Context, receiptID string, userID string) error
}

// ReceiptSvcFacade combines all receipt-related service interfaces
type ReceiptSvcFacade interface {
	ReceiptReaderSvc
	ReceiptWriterSvc
}
