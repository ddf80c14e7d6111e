package commands

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/infrastructure/config"
	"github.com/rusafhasan/agencymanagement/pkg/logger"
)

type Globals struct {
	Debug   bool
	Version string
}

// setup initialises the shared logger and loads configuration from the
// environment.
func setup(ctx context.Context, globals *Globals) (*config.Config, zerolog.Logger, error) {
	boot := logger.New(logger.ForEnvironment("", "info", globals.Debug))
	cfg, err := config.Load(ctx, boot)
	if err != nil {
		return nil, boot, err
	}
	log := logger.Init(logger.ForEnvironment(cfg.Env, cfg.LogLevel, globals.Debug))
	return cfg, log, nil
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    16 * 1024, // 16KiB
	}
}
