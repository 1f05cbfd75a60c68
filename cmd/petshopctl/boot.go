// AngelaMos | 2026
// boot.go

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/carterperez-dev/petshop-backend/internal/auth"
	"github.com/carterperez-dev/petshop-backend/internal/catalog"
	"github.com/carterperez-dev/petshop-backend/internal/config"
	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/user"
)

// env holds what every subcommand needs: configuration and an open pool.
type env struct {
	cfg *config.Config
	db  *core.Database
}

func boot(ctx context.Context) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, db: db}, nil
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}
}

func (e *env) users() *user.Service {
	return user.NewService(
		user.NewRepository(e.db.DB),
		core.NewPasswordHasher(core.DefaultArgonParams),
	)
}

func (e *env) catalog() *catalog.Service {
	return catalog.NewService(
		catalog.NewProductRepository(e.db.DB),
		catalog.NewServiceRepository(e.db.DB),
	)
}

func (e *env) sessions() *auth.Service {
	return auth.NewService(
		auth.NewRepository(e.db.DB),
		e.users(),
		nil,
		nil,
		e.cfg.Session.TTL,
		nil,
	)
}
