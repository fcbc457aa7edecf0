package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leavedesk/leave-api/internal/infrastructure/config"
	"github.com/leavedesk/leave-api/internal/infrastructure/db"
	"github.com/leavedesk/leave-api/pkg/logger"
)

// migrateCmd applies the schema of the configured store and exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply store migrations (SQL schema or Mongo indexes)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "leave-api"})
		log := logger.Component("migrate")

		store, err := db.Open(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(closeCtx)
		}()

		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate %s store: %w", store.Name(), err)
		}
		log.Info().Str("store", store.Name()).Msg("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
