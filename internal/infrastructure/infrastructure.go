// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, encryption) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"reverie/internal/config"
	"reverie/pkg/crypto"
	"reverie/pkg/database"
	"reverie/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, and encryption.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Crypto    crypto.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	cryptoSys, err := crypto.New(&cfg.Crypto)
	if err != nil {
		return nil, fmt.Errorf("crypto init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Crypto:    cryptoSys,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The crypto system is stateless and needs no lifecycle hooks.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
