package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/marvel-api/internal/config"
	"github.com/phrazzld/marvel-api/internal/domain"
	"github.com/phrazzld/marvel-api/internal/events"
	"github.com/phrazzld/marvel-api/internal/imagecache"
	"github.com/phrazzld/marvel-api/internal/mapper"
	"github.com/phrazzld/marvel-api/internal/marvel"
	"github.com/phrazzld/marvel-api/internal/platform/memory"
	"github.com/phrazzld/marvel-api/internal/platform/postgres"
	"github.com/phrazzld/marvel-api/internal/service"
	"github.com/phrazzld/marvel-api/internal/store"
)

// application holds the shared dependencies of a running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is configured
	db *sql.DB

	emitter    events.EventEmitter
	characters *service.CharacterService
	comics     *service.ComicService
}

// newApplication wires the upstream client, mapper, image cache, stores and
// services from cfg. db must be open when the postgres driver is configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))
	app.emitter = emitter

	signer, err := marvel.NewSigner(cfg.Upstream.PublicKey, cfg.Upstream.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize request signer: %w", err)
	}

	imageStore, err := imagecache.NewStore(ctx, cfg.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}
	logger.Info("image store initialized", "driver", cfg.Images.Driver)

	deps := service.Dependencies{
		Upstream: marvel.NewClient(cfg.Upstream, logger),
		Queries:  marvel.NewQueryBuilder(cfg.Upstream.BaseURL, signer),
		Images:   imagecache.New(imageStore, emitter, cfg.Upstream.Timeout, logger),
		Mapper:   mapper.New(emitter, logger),
		Logger:   logger,
	}

	characterRepo, comicRepo, err := newRepositories(cfg.Database, db, logger)
	if err != nil {
		return nil, err
	}

	app.characters, err = service.NewCharacterService(deps, characterRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to create character service: %w", err)
	}
	app.comics, err = service.NewComicService(deps, comicRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to create comic service: %w", err)
	}

	return app, nil
}

// newRepositories returns the document stores for the configured driver.
func newRepositories(
	cfg config.DatabaseConfig,
	db *sql.DB,
	logger *slog.Logger,
) (store.Repository[domain.Character], store.Repository[domain.Comic], error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("using in-memory document store; written records are lost on restart")
		return memory.NewCharacterStore(), memory.NewComicStore(), nil
	case "postgres":
		if db == nil {
			return nil, nil, fmt.Errorf("%w: postgres driver requires an open database", domain.ErrValidation)
		}
		characters, err := postgres.NewCharacterStore(db, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create character store: %w", err)
		}
		comics, err := postgres.NewComicStore(db, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create comic store: %w", err)
		}
		return characters, comics, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown database driver %q", domain.ErrValidation, cfg.Driver)
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
