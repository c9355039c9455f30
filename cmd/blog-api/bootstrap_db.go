package main

import (
	"context"

	config "github.com/NordCoder/Bloggerus/internal/config/blog-api"
	pg "github.com/NordCoder/Bloggerus/internal/repository/postgres"
)

func initDB(ctx context.Context, cfg *config.Config) (*pg.DB, error) {
	return pg.New(ctx, cfg.DB)
}
