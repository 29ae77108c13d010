package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/marvel-api/internal/config"
	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/phrazzld/marvel-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version]",
	Short:     "Apply or inspect the document store schema",
	ValidArgs: []string{"up", "down", "status", "version"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := checkMigratable(cfg.Database); err != nil {
			return err
		}

		l, err := logger.Setup(cfg.Server)
		if err != nil {
			return fmt.Errorf("failed to set up logger: %w", err)
		}

		db, err := setupAppDatabase(cmd.Context(), cfg.Database, l)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				l.Error("failed to close database connection", "error", cerr)
			}
		}()

		l.Info("running migrations", slog.String("command", args[0]))
		if err := postgres.Migrate(cmd.Context(), db, args[0]); err != nil {
			return err
		}
		l.Info("migrations finished", slog.String("command", args[0]))
		return nil
	},
}

// checkMigratable reports whether the configured store has a schema to migrate.
func checkMigratable(cfg config.DatabaseConfig) error {
	if cfg.Driver != "postgres" {
		return fmt.Errorf("migrations require database driver postgres, got %q", cfg.Driver)
	}
	return nil
}
