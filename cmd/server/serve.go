package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phrazzld/marvel-api/internal/config"
	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// runServe loads configuration, wires the application and serves until ctx
// is canceled.
func runServe(ctx context.Context) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"upstream", cfg.Upstream.BaseURL,
		"database_driver", cfg.Database.Driver,
		"images_driver", cfg.Images.Driver)

	var db *sql.DB
	if cfg.Database.Driver == "postgres" {
		db, err = setupAppDatabase(ctx, cfg.Database, l)
		if err != nil {
			return err
		}
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
