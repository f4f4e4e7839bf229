package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/api"
	"github.com/phrazzld/contacts-api/internal/config"
	"github.com/phrazzld/contacts-api/internal/pipeline"
	"github.com/phrazzld/contacts-api/internal/platform/postgres"
	"github.com/phrazzld/contacts-api/internal/service"
	"github.com/phrazzld/contacts-api/internal/service/auth"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"
)

// dependencies are the storage collaborators of the application.
type dependencies struct {
	users    store.UserStore
	contacts store.ContactStore
	// tx may be nil, in which case index assignment runs without a
	// transaction.
	tx     store.TxBeginner
	hasher auth.PasswordHasher
}

func newPostgresDependencies(db *sql.DB, log *slog.Logger) dependencies {
	return dependencies{
		users:    postgres.NewPostgresUserStore(db, log),
		contacts: postgres.NewPostgresContactStore(db, log),
		tx:       db,
		hasher:   auth.NewBcryptHasher(bcrypt.DefaultCost),
	}
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	// db is nil when the application runs on non-SQL stores.
	db *sql.DB

	registry *prometheus.Registry
	runtime  *pipeline.Runtime
	pipeline *pipeline.Pipeline

	authHandler    *api.AuthHandler
	contactHandler *api.ContactHandler

	// fatal receives the reason of the first non-operational error.
	fatal chan error
}

func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, deps dependencies) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
		fatal:    make(chan error, 1),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"header", cfg.Auth.Header)

	app.runtime = pipeline.NewRuntime(app.onFatal, logger)
	app.pipeline = pipeline.New(pipeline.Config{
		Runtime:          app.runtime,
		Sink:             pipeline.NewSink(app.runtime, logger, app.registry),
		Verifier:         auth.NewVerifier(tokens),
		CredentialHeader: cfg.Auth.Header,
		Logger:           logger,
	})

	users := service.NewUserService(deps.users, deps.hasher, tokens, logger)
	contacts := service.NewContactService(deps.contacts, deps.tx, logger)

	app.authHandler = api.NewAuthHandler(users)
	app.contactHandler = api.NewContactHandler(contacts)

	logger.Info("Application initialized successfully")
	return app, nil
}

// onFatal is the runtime's shutdown hook. The runtime calls it at most once.
func (app *application) onFatal(reason error) {
	select {
	case app.fatal <- reason:
	default:
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
