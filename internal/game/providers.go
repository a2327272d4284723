package game

import (
	"fmt"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/config"
	"github.com/Faultbox/planeshift/internal/engine/camera"
	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/game/controls"
	"github.com/Faultbox/planeshift/internal/game/depenetration"
	"github.com/Faultbox/planeshift/internal/game/geometry"
	"github.com/Faultbox/planeshift/internal/game/level"
	"github.com/Faultbox/planeshift/internal/game/player"
	"github.com/Faultbox/planeshift/internal/game/projection"
	"github.com/Faultbox/planeshift/pkg/math"
)

// ProviderSet builds a Game from a config and a logger.
var ProviderSet = wire.NewSet(
	ProvideWorld,
	ProvideLevel,
	ProvideScene,
	ProvideMotor,
	ProvideGeometry,
	ProvideSolver,
	ProvideRig,
	ProvideFollow,
	ProvideController,
	ProvideCoordinator,
	ProvideRouter,
	New,
)

// ProvideWorld creates the physics world.
func ProvideWorld() *physics.BoxWorld {
	return physics.NewBoxWorld()
}

// ProvideLevel loads the configured level.
func ProvideLevel(cfg *config.Config) (*level.Level, error) {
	return level.Load(cfg.Level.Path)
}

// ProvideScene builds the level into world.
func ProvideScene(l *level.Level, world *physics.BoxWorld, log *zap.Logger) *level.Scene {
	return l.Build(world, log.Named("level"))
}

// ProvideMotor creates the player motor.
func ProvideMotor(s *level.Scene, world *physics.BoxWorld, cfg *config.Config, log *zap.Logger) (*player.Motor, error) {
	if s.Player == nil {
		return nil, level.ErrNoPlayer
	}
	mask, err := groundMask(cfg)
	if err != nil {
		return nil, err
	}
	return player.NewMotor(s.Player, world, mask, cfg.Motion, log.Named("motor")), nil
}

// ProvideGeometry creates the terrain source, measured from the level's rotation center.
func ProvideGeometry(s *level.Scene, world *physics.BoxWorld, cfg *config.Config, log *zap.Logger) *geometry.Source {
	l := log.Named("geometry")
	src := geometry.NewSource(s.Terrain, geometry.NewTransformer(world, l), cfg.Projection.PlaneSettings, l)
	if s.Center != nil {
		src.SetRotationCenter(s.Center)
	}
	return src
}

// ProvideSolver creates the depenetration solver.
func ProvideSolver(world *physics.BoxWorld, cfg *config.Config, log *zap.Logger) *depenetration.Solver {
	return depenetration.NewSolver(world, cfg.Depenetration, log.Named("depenetration"))
}

// ProvideRig creates the camera rig with its pivot at the player's height.
func ProvideRig(s *level.Scene, cfg *config.Config) *camera.Rig {
	var pivot math.Vec3
	if s.Player != nil {
		pivot.Y = s.Player.Position().Y + cfg.Camera.VerticalFollow.Offset
	}
	return camera.NewRig(pivot, cfg.Camera.ViewYaw[cfg.Projection.InitialView], cfg.Camera.Distance)
}

// ProvideFollow creates the vertical follow that owns the rig's height.
func ProvideFollow(rig *camera.Rig, s *level.Scene, cfg *config.Config) (*camera.VerticalFollow, error) {
	fs := cfg.Camera.VerticalFollow
	dz, err := fs.NewDeadZone()
	if err != nil {
		return nil, fmt.Errorf("vertical follow: %w", err)
	}
	sm, err := fs.NewSmoothing()
	if err != nil {
		return nil, fmt.Errorf("vertical follow: %w", err)
	}
	target := s.Root
	if s.Player != nil {
		target = s.Player.Node
	}
	return camera.NewVerticalFollow(rig, target, fs.Offset, dz, sm), nil
}

// ProvideController creates the rotation timer.
func ProvideController(cfg *config.Config) (*projection.Controller, error) {
	easing, err := cfg.Camera.EasingFunc()
	if err != nil {
		return nil, fmt.Errorf("rotation easing: %w", err)
	}
	return projection.NewController(cfg.Camera.RotationDuration, easing), nil
}

// ProvideCoordinator wires the view switch.
func ProvideCoordinator(
	cfg *config.Config,
	controller *projection.Controller,
	src *geometry.Source,
	motor *player.Motor,
	rig *camera.Rig,
	solver *depenetration.Solver,
	world *physics.BoxWorld,
	log *zap.Logger,
) (*projection.Coordinator, error) {
	settings, err := CoordinatorSettings(cfg)
	if err != nil {
		return nil, err
	}
	l := log.Named("projection")
	return projection.NewCoordinator(
		settings,
		controller,
		src,
		projection.NewPlayerAdapter(motor, l),
		projection.NewCameraAdapter(rig, l),
		solver,
		world,
		l,
	), nil
}

// ProvideRouter creates the input router.
func ProvideRouter(motor *player.Motor, coord *projection.Coordinator, rig *camera.Rig, log *zap.Logger) *controls.Router {
	return controls.NewRouter(motor, coord, rig, log.Named("controls"))
}

// CoordinatorSettings derives the switch settings from cfg.
func CoordinatorSettings(cfg *config.Config) (projection.Settings, error) {
	mask, err := groundMask(cfg)
	if err != nil {
		return projection.Settings{}, err
	}
	var views [2]projection.View
	for i := range views {
		views[i] = projection.View{
			Yaw:  cfg.Camera.ViewYaw[i],
			Axis: cfg.Projection.ViewAxes[i],
		}
	}
	return projection.Settings{
		Views:             views,
		InitialView:       cfg.Projection.InitialView,
		PivotOffset:       cfg.Camera.PivotOffset,
		CameraDistance:    cfg.Camera.Distance,
		Switch:            cfg.Switch,
		OverlapMask:       mask,
		OverlapIterations: cfg.Depenetration.Iterations,
	}, nil
}

func groundMask(cfg *config.Config) (physics.LayerMask, error) {
	mask, err := physics.MaskFromNames(cfg.Depenetration.GroundLayers)
	if err != nil {
		return 0, fmt.Errorf("ground layers: %w", err)
	}
	return mask, nil
}
