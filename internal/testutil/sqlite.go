// Package testutil provides database fixtures for tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/billing_ledger/pkg/database"
	"github.com/stretchr/testify/require"
)

// Seeded default payment methods.
const (
	DefaultCashID   = "pm-default-cash"
	DefaultChequeID = "pm-default-cheque"
)

// NewSQLiteProvider migrates a fresh SQLite file under t.TempDir and returns
// repositories backed by it. The handle is closed when the test ends.
func NewSQLiteProvider(t testing.TB) portsrepo.RepositoryProvider {
	t.Helper()

	path := filepath.Join(t.TempDir(), "billing.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, database.MigrateSQLite(path, logger))

	db, err := database.NewSQLiteDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlite.NewRepositoryProvider(db)
}
