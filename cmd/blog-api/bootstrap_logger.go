package main

import (
	"go.uber.org/zap"

	config "github.com/NordCoder/Bloggerus/internal/config/blog-api"
	"github.com/NordCoder/Bloggerus/internal/obs"
)

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return obs.NewLogger(obs.LogConfig{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		App:    cfg.App.Name,
		Env:    cfg.App.Env,
		Ver:    cfg.App.Version,
	})
}
