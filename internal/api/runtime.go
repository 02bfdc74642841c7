package api

import (
	"reverie/internal/config"
	"reverie/internal/infrastructure"
	"reverie/internal/summarizer"
	"reverie/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific systems and configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Summarizer summarizer.System
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Crypto:    infra.Crypto,
		},
		Summarizer: summarizer.New(&cfg.Summarizer, logger),
		Pagination: cfg.API.Pagination,
	}
}
