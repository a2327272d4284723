// Package main is the entry point for planeshift.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/config"
	"github.com/Faultbox/planeshift/internal/game"
	"github.com/Faultbox/planeshift/internal/game/desktop"
	"github.com/Faultbox/planeshift/internal/injector"
	"github.com/Faultbox/planeshift/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, path, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== planeshift ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, path); err != nil {
		logger.Error("game error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("game closed normally")
}

func run(cfg *config.Config, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := injector.InitializeGame(cfg, logger.Log)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	defer g.Close()

	if path != "" {
		w, err := config.NewWatcher(path, logger.Named("config"))
		if err != nil {
			logger.Warn("config hot reload disabled", zap.String("path", path), zap.Error(err))
		} else {
			defer w.Close()
			g.Watch(w.Configs)
		}
	}

	if cfg.Run.Headless {
		err = g.RunHeadless(ctx, game.DemoScript(), cfg.Run.Duration)
	} else {
		err = desktop.Run(ctx, g, logger.Log)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
