// Package game runs the perspective-switching simulation.
package game

import (
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
)

// Game owns one running level.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	world       *physics.BoxWorld
	scene       *level.Scene
	motor       *player.Motor
	source      *geometry.Source
	solver      *depenetration.Solver
	rig         *camera.Rig
	follow      *camera.VerticalFollow
	controller  *projection.Controller
	coordinator *projection.Coordinator
	router      *controls.Router

	accumulator float32
	elapsed     float32
	steps       int

	reloads <-chan *config.Config
	pending *config.Config

	goalReached bool
}

// New assembles a game from its parts and puts the level into the initial view.
func New(
	cfg *config.Config,
	log *zap.Logger,
	world *physics.BoxWorld,
	scene *level.Scene,
	motor *player.Motor,
	source *geometry.Source,
	solver *depenetration.Solver,
	rig *camera.Rig,
	follow *camera.VerticalFollow,
	controller *projection.Controller,
	coordinator *projection.Coordinator,
	router *controls.Router,
) *Game {
	g := &Game{
		cfg:         cfg,
		log:         log.Named("game"),
		world:       world,
		scene:       scene,
		motor:       motor,
		source:      source,
		solver:      solver,
		rig:         rig,
		follow:      follow,
		controller:  controller,
		coordinator: coordinator,
		router:      router,
	}

	coordinator.OnSwitchStarted(func(ev projection.SwitchEvent) {
		g.log.Debug("switch started", zap.Int("to", ev.To), zap.Float32("t", g.elapsed))
	})
	coordinator.OnSwitchCompleted(func(ev projection.SwitchEvent) {
		g.follow.Snap()
		g.log.Info("view changed",
			zap.Int("view", ev.To),
			zap.Stringer("axis", ev.ToAxis),
			zap.Any("player", g.motor.Body().Position()),
		)
	})

	coordinator.Initialize()
	follow.Snap()
	return g
}

// Watch makes the game apply configs received on ch. Configs are applied between
// switches only.
func (g *Game) Watch(ch <-chan *config.Config) {
	g.reloads = ch
}

// Frame advances the game by one rendered frame of dt seconds with the given input.
func (g *Game) Frame(dt float32, input controls.Frame) {
	g.pollReload()

	g.router.Route(input)
	g.coordinator.Advance(dt)

	fixed := g.cfg.Physics.FixedStep
	g.accumulator += dt
	n := 0
	for g.accumulator >= fixed && n < g.cfg.Physics.MaxSubsteps {
		g.fixedUpdate(fixed)
		g.accumulator -= fixed
		n++
	}
	if n == g.cfg.Physics.MaxSubsteps && g.accumulator > fixed {
		g.log.Debug("dropping simulation time", zap.Float32("behind", g.accumulator))
		g.accumulator = 0
	}

	g.follow.Update(dt)
	g.elapsed += dt
}

func (g *Game) fixedUpdate(dt float32) {
	g.motor.FixedUpdate(dt)
	g.world.Step(dt)
	g.steps++
	g.checkGoal()
}

func (g *Game) checkGoal() {
	if g.goalReached {
		return
	}
	b := g.motor.Body().Collider.Bounds()
	for _, c := range g.world.OverlapBox(b.Center(), b.Extents(), physics.LayerTrigger.Mask(), true) {
		if c.Trigger {
			g.goalReached = true
			g.log.Info("goal reached", zap.String("trigger", c.Name), zap.Float32("t", g.elapsed))
			return
		}
	}
}

func (g *Game) pollReload() {
	if g.reloads != nil {
		select {
		case cfg, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
			} else if cfg != nil {
				g.pending = cfg
			}
		default:
		}
	}
	if g.pending != nil && g.ApplyConfig(g.pending) {
		g.pending = nil
	}
}

// ApplyConfig applies tuning from cfg. It refuses while a switch is running and
// reports whether the config was applied. Level, window and physics step changes need
// a restart.
func (g *Game) ApplyConfig(cfg *config.Config) bool {
	if g.coordinator.IsSwitching() {
		return false
	}
	easing, err := cfg.Camera.EasingFunc()
	if err != nil {
		g.log.Warn("ignoring config with bad easing", zap.Error(err))
		return true
	}
	mask, err := groundMask(cfg)
	if err != nil {
		g.log.Warn("ignoring config with bad ground layers", zap.Error(err))
		return true
	}

	g.motor.SetSettings(cfg.Motion)
	g.motor.SetGroundMask(mask)
	g.solver.SetSettings(cfg.Depenetration)
	g.source.SetSettings(cfg.Projection.PlaneSettings)
	g.controller.SetDuration(cfg.Camera.RotationDuration)
	g.controller.SetEasing(easing)
	g.coordinator.SetSwitchSettings(cfg.Switch)
	g.coordinator.SetPivotOffset(cfg.Camera.PivotOffset)
	g.coordinator.SetOverlap(mask, cfg.Depenetration.Iterations)

	g.cfg.Motion = cfg.Motion
	g.cfg.Depenetration = cfg.Depenetration
	g.cfg.Projection.PlaneSettings = cfg.Projection.PlaneSettings
	g.cfg.Camera.RotationDuration = cfg.Camera.RotationDuration
	g.cfg.Camera.Easing = cfg.Camera.Easing
	g.cfg.Camera.EasingCurve = cfg.Camera.EasingCurve
	g.cfg.Camera.PivotOffset = cfg.Camera.PivotOffset
	g.cfg.Switch = cfg.Switch

	g.log.Info("config applied")
	return true
}

// Config returns the active config.
func (g *Game) Config() *config.Config { return g.cfg }

// World returns the physics world.
func (g *Game) World() *physics.BoxWorld { return g.world }

// Scene returns the built level.
func (g *Game) Scene() *level.Scene { return g.scene }

// Motor returns the player motor.
func (g *Game) Motor() *player.Motor { return g.motor }

// Rig returns the camera rig.
func (g *Game) Rig() *camera.Rig { return g.rig }

// Coordinator returns the view switch.
func (g *Game) Coordinator() *projection.Coordinator { return g.coordinator }

// Elapsed returns the simulated seconds.
func (g *Game) Elapsed() float32 { return g.elapsed }

// Steps returns the number of fixed physics steps run.
func (g *Game) Steps() int { return g.steps }

// GoalReached reports whether the player has touched a trigger.
func (g *Game) GoalReached() bool { return g.goalReached }

// Close tears the level down without restoring terrain.
func (g *Game) Close() {
	g.source.Teardown()
	g.scene.Root.Destroy()
	g.world.SyncTransforms()
	g.log.Info("game closed", zap.Float32("t", g.elapsed), zap.Int("steps", g.steps))
}
