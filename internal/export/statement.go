// Package export renders client journals as spreadsheets.
package export

import (
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Statement"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout  = "2006-01-02"
)

var statementHeadings = []any{"Date", "Particular", "Type", "Reference", "Notes", "Dr", "Cr", "Balance"}

// firstEntryRow is the sheet row of the first journal entry, below the client header block.
const firstEntryRow = 5

// ClientStatement writes an xlsx workbook with the client header, one row per ledger row
// and a totals row taken from summary.
func ClientStatement(client domain.Client, rows []domain.LedgerRow, summary domain.JournalSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := [][]any{
		{"Client", client.Name},
		{"Opening balance", summary.OpeningBalance.InexactFloat64()},
		{},
		statementHeadings,
	}
	for i, values := range header {
		if err := setRow(f, i+1, values); err != nil {
			return nil, err
		}
	}

	for i, r := range rows {
		values := []any{
			r.Date.Format(dateLayout),
			r.Particular,
			string(r.Type),
			r.ReferenceID,
			r.Notes,
			r.Dr.InexactFloat64(),
			r.Cr.InexactFloat64(),
			r.Balance.InexactFloat64(),
		}
		if err := setRow(f, firstEntryRow+i, values); err != nil {
			return nil, err
		}
	}

	totals := []any{
		"", "Total", "", "", "",
		summary.TotalDebit.InexactFloat64(),
		summary.TotalCredit.InexactFloat64(),
		summary.ClosingBalance.InexactFloat64(),
	}
	if err := setRow(f, firstEntryRow+len(rows), totals); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SheetName, cell, &values)
}
