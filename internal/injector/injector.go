//go:build wireinject
// +build wireinject

// Package injector assembles a game from its providers.
package injector

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/config"
	"github.com/Faultbox/planeshift/internal/game"
)

// InitializeGame builds a game for cfg.
func InitializeGame(cfg *config.Config, log *zap.Logger) (*game.Game, error) {
	wire.Build(game.ProviderSet)
	return nil, nil
}
