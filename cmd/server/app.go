package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wanderlist-api/internal/config"
	"github.com/phrazzld/wanderlist-api/internal/platform/mongodb"
	"github.com/phrazzld/wanderlist-api/internal/platform/postgres"
	"github.com/phrazzld/wanderlist-api/internal/redact"
	"github.com/phrazzld/wanderlist-api/internal/service"
	"github.com/phrazzld/wanderlist-api/internal/service/auth"
	"github.com/phrazzld/wanderlist-api/internal/store"
	"github.com/phrazzld/wanderlist-api/internal/store/memstore"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Backend handles; at most one is set, depending on Database.Driver.
	db    *sql.DB
	mongo *mongodb.Client

	destinationStore store.DestinationStore
	userStore        store.UserStore

	jwtService         auth.JWTService
	passwordVerifier   auth.PasswordVerifier
	userService        service.UserService
	destinationService service.DestinationService
	activityService    service.ActivityService
}

// newApplication connects the configured backend and builds every service
// on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	if err := app.setupStores(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	app.userService = service.NewUserService(app.userStore, logger)

	app.destinationService, err = service.NewDestinationService(app.destinationStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create destination service: %w", err)
	}

	app.activityService, err = service.NewActivityService(app.destinationStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create activity service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupStores opens the backend named by Database.Driver.
func (app *application) setupStores(ctx context.Context) error {
	cfg := app.config

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg, app.logger)
		if err != nil {
			return err
		}
		app.db = db
		app.destinationStore = postgres.NewPostgresDestinationStore(db, app.logger)
		app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, app.logger)

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Database.URL, cfg.Database.Name, app.logger)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %s", redact.Error(err))
		}
		app.mongo = client
		app.destinationStore = mongodb.NewMongoDestinationStore(client.Database(), app.logger)
		app.userStore = mongodb.NewMongoUserStore(client.Database(), cfg.Auth.BcryptCost, app.logger)

	case config.DriverMemory:
		app.logger.Warn("using in-memory stores, data will not survive a restart")
		app.destinationStore = memstore.NewDestinationStore(app.logger)
		app.userStore = memstore.NewUserStore(cfg.Auth.BcryptCost)

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	app.logger.Info("Stores initialized", "driver", cfg.Database.Driver)
	return nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", redact.ErrorAttr(err))
		}
	}

	if app.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.mongo.Close(ctx); err != nil {
			app.logger.Error("Error closing MongoDB connection", redact.ErrorAttr(err))
		}
	}

	app.logger.Info("Application shutdown completed")
}
