package accounting

import (
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineTotal returns quantity*rate.
func LineTotal(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate)
}

// CalculateDiscountAmount resolves a discount policy against a subtotal.
// A rate discount is a percentage of subTotal; an amount discount is taken verbatim.
// The result is capped at subTotal so a document total never goes below zero.
func CalculateDiscountAmount(subTotal decimal.Decimal, discountType domain.DiscountType, discountValue decimal.Decimal) decimal.Decimal {
	if !discountValue.IsPositive() {
		return decimal.Zero
	}

	var discountAmount decimal.Decimal
	switch discountType {
	case domain.DiscountRate:
		discountAmount = subTotal.Mul(discountValue).Div(hundred)
	default:
		discountAmount = discountValue
	}

	if discountAmount.GreaterThan(subTotal) {
		discountAmount = subTotal
	}
	return discountAmount
}

// CalculateTotals sums the line totals as given and applies the discount.
// Line totals are trusted; callers that want quantity*rate fill them beforehand.
func CalculateTotals(items []domain.LineItem, discountType domain.DiscountType, discountValue decimal.Decimal) domain.Totals {
	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(item.Total)
	}
	discountAmount := CalculateDiscountAmount(subTotal, discountType, discountValue)
	return domain.Totals{
		SubTotal:       subTotal,
		DiscountAmount: discountAmount,
		Total:          subTotal.Sub(discountAmount),
	}
}

// DebitCredit splits an entry amount into its debit and credit sides.
// Bills debit the client, receipts credit it.
func DebitCredit(entry domain.JournalEntry) (dr, cr decimal.Decimal) {
	if entry.Type == domain.EntryBill {
		return entry.Amount, decimal.Zero
	}
	return decimal.Zero, entry.Amount
}

// RunningBalance folds entries, already ordered by (date, seq), starting from openingBalance.
// Each row carries the balance after its own entry.
func RunningBalance(openingBalance decimal.Decimal, entries []domain.JournalEntry) []domain.LedgerRow {
	rows := make([]domain.LedgerRow, len(entries))
	balance := openingBalance
	for i, entry := range entries {
		dr, cr := DebitCredit(entry)
		balance = balance.Add(dr).Sub(cr)
		rows[i] = domain.LedgerRow{JournalEntry: entry, Dr: dr, Cr: cr, Balance: balance}
	}
	return rows
}

// Summarize totals the debit and credit sides of a folded ledger.
func Summarize(clientID string, openingBalance decimal.Decimal, rows []domain.LedgerRow) domain.JournalSummary {
	summary := domain.JournalSummary{
		ClientID:       clientID,
		OpeningBalance: openingBalance,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		ClosingBalance: openingBalance,
	}
	for _, row := range rows {
		summary.TotalDebit = summary.TotalDebit.Add(row.Dr)
		summary.TotalCredit = summary.TotalCredit.Add(row.Cr)
	}
	if len(rows) > 0 {
		summary.ClosingBalance = rows[len(rows)-1].Balance
	}
	return summary
}
