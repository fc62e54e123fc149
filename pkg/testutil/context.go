package testutil

import (
	"context"
	"time"

	"github.com/wanderlands/backend/config"
	"github.com/wanderlands/backend/internal/entity"
	"github.com/wanderlands/backend/pkg/logger"
	"github.com/wanderlands/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockContext returns a context carrying test configs, a quiet logger,
// and a fresh in-memory sqlite database with migrated tables.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Default()
	cfg.Env = "test"
	cfg.Auth = config.AuthConfigs{
		TokenSecret:     "secret",
		TokenExpiration: time.Minute,
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
