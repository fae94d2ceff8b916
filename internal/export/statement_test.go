package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestClientStatement(t *testing.T) {
	client := domain.Client{ClientID: "c1", Name: "Acme", OpeningBalance: decimal.NewFromInt(10)}
	entries := []domain.JournalEntry{
		{EntryID: "e1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Particular: "Bill BILL-2024-0001", Type: domain.EntryBill, Amount: decimal.NewFromInt(200), ReferenceID: "b1"},
		{EntryID: "e2", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Particular: "Receipt from Acme", Type: domain.EntryReceipt, Amount: decimal.NewFromInt(150), ReferenceID: "r1"},
	}
	rows := accounting.RunningBalance(client.OpeningBalance, entries)
	summary := accounting.Summarize(client.ClientID, client.OpeningBalance, rows)

	data, err := ClientStatement(client, rows, summary)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 7)

	assert.Equal(t, []string{"Client", "Acme"}, got[0])
	assert.Equal(t, "Date", got[3][0])
	assert.Equal(t, "Balance", got[3][7])

	assert.Equal(t, "2024-03-01", got[4][0])
	assert.Equal(t, "200", got[4][5])
	assert.Equal(t, "210", got[4][7])

	assert.Equal(t, "Receipt from Acme", got[5][1])
	assert.Equal(t, "150", got[5][6])
	assert.Equal(t, "60", got[5][7])

	assert.Equal(t, "Total", got[6][1])
	assert.Equal(t, "60", got[6][7])
}

func TestClientStatement_Empty(t *testing.T) {
	client := domain.Client{ClientID: "c1", Name: "Acme"}
	summary := accounting.Summarize(client.ClientID, decimal.Zero, nil)

	data, err := ClientStatement(client, nil, summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Total", got[4][1])
}
