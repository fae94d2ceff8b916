package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/billing_ledger/internal/platform/config"
	"github.com/SscSPs/billing_ledger/internal/utils"
	"github.com/SscSPs/billing_ledger/pkg/database"
	"github.com/spf13/cobra"
)

// @title Billing Ledger API
// @version 1.0
// @description Bills, estimates, receipts and client journals for a small business.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCommand(logger).ExecuteContext(context.Background()); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "billing_backend",
		Short:         "Billing ledger backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), logger)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServer(cmd.Context(), logger)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadConfig()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				return migrate(cfg, logger)
			},
		},
		&cobra.Command{
			Use:   "hash-password <password>",
			Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				hash, err := utils.HashPassword(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			},
		},
	)
	return cmd
}

func migrate(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("driver", cfg.DBDriver))
	if cfg.DBDriver == config.DriverSQLite {
		return database.MigrateSQLite(cfg.SQLitePath, logger)
	}
	return database.MigratePostgres(cfg.DatabaseURL, logger)
}
