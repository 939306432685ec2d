package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/david5010/AetherGrid/internal/config"
)

// @title AetherGrid API
// @version 1.0
// @description Weather forecast and electricity grid load data, normalized into tables
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	app, err := NewApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}

	logger.Info("starting server", "addr", cfg.GetServerAddr())
	if err := app.Run(cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		return err
	}
	return nil
}
