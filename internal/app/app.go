package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/omw-seeder/internal/config"
	"github.com/heartmarshall/omw-seeder/pkg/ctxutil"
)

// Bootstrap loads configuration, initializes the logger, tags ctx with a
// fresh run ID and logs startup information.
func Bootstrap(ctx context.Context) (context.Context, *config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, nil, err
	}

	logger := NewLogger(cfg.Log)

	runID := uuid.New()
	ctx = ctxutil.WithRunID(ctx, runID)

	logger.Info("starting omw-seeder",
		slog.String("build", BuildVersion()),
		slog.String("run_id", runID.String()),
		slog.String("log_level", cfg.Log.Level),
	)

	return ctx, cfg, logger, nil
}
