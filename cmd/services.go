package cmd

import (
	"context"
	"fmt"

	"github.com/zjrosen/stobind/internal/infrastructure/sqlite"
	"github.com/zjrosen/stobind/internal/profile"
	"github.com/zjrosen/stobind/internal/telemetry"
)

// services bundles the shared dependencies subcommands need: the
// profile database, repository, import/export service and tracing.
type services struct {
	DB      *sqlite.DB
	Repo    profile.Repository
	Service *profile.Service
	Tracing *telemetry.Provider
}

// openServices opens the profile database and wires the service layer
// from the loaded config. Callers must Close.
func openServices() (*services, error) {
	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening profile database: %w", err)
	}

	tracing, err := telemetry.NewProvider(cfg.Tracing)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configuring tracing: %w", err)
	}

	repo := db.ProfileRepository()
	return &services{
		DB:      db,
		Repo:    repo,
		Service: profile.NewService(repo),
		Tracing: tracing,
	}, nil
}

// Close flushes tracing and closes the database.
func (s *services) Close() {
	if s.Tracing != nil {
		_ = s.Tracing.Shutdown(context.Background())
	}
	if s.DB != nil {
		_ = s.DB.Close()
	}
}
