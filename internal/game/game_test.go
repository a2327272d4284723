package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/config"
	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/game/controls"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/internal/game/projection"
	"github.com/Faultbox/planeshift/pkg/math"
)

func newTestGame(t *testing.T, cfg *config.Config) *Game {
	t.Helper()
	log := zap.NewNop()

	world := ProvideWorld()
	l, err := ProvideLevel(cfg)
	require.NoError(t, err)
	s := ProvideScene(l, world, log)
	motor, err := ProvideMotor(s, world, cfg, log)
	require.NoError(t, err)
	src := ProvideGeometry(s, world, cfg, log)
	solver := ProvideSolver(world, cfg, log)
	rig := ProvideRig(s, cfg)
	follow, err := ProvideFollow(rig, s, cfg)
	require.NoError(t, err)
	controller, err := ProvideController(cfg)
	require.NoError(t, err)
	coord, err := ProvideCoordinator(cfg, controller, src, motor, rig, solver, world, log)
	require.NoError(t, err)
	router := ProvideRouter(motor, coord, rig, log)

	return New(cfg, log, world, s, motor, src, solver, rig, follow, controller, coord, router)
}

func TestNewInitializesFirstView(t *testing.T) {
	g := newTestGame(t, config.Default())

	assert.Equal(t, 0, g.Coordinator().CurrentView())
	assert.Equal(t, plane.X, g.Motor().ActivePlane())
	assert.True(t, g.Motor().State().PlaneLockEnabled)
	for _, n := range g.Scene().Terrain.MeshNodes() {
		assert.Zero(t, n.WorldPosition().Z, "%s flattened onto the Z seam", n.Name)
	}
}

func TestHeadlessDemo(t *testing.T) {
	cfg := config.Default()
	g := newTestGame(t, cfg)

	var completed []int
	g.Coordinator().OnSwitchCompleted(func(ev projection.SwitchEvent) { completed = append(completed, ev.To) })

	require.NoError(t, g.RunHeadless(context.Background(), DemoScript(), 6*time.Second))

	assert.Equal(t, []int{1, 0}, completed)
	assert.False(t, g.Coordinator().IsSwitching())
	assert.Equal(t, 0, g.Coordinator().CurrentView())

	pos := g.Motor().Body().Position()
	floorTop := float32(0)
	halfHeight := g.Motor().Body().Collider.HalfExtents.Y
	assert.GreaterOrEqual(t, pos.Y, floorTop+halfHeight-0.05, "never sinks into the floor")
	assert.Equal(t, float32(0), pos.Z, "locked to the Z seam")
	assert.Greater(t, g.Steps(), 300)
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	g := newTestGame(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.RunHeadless(ctx, nil, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, g.Steps())
}

func TestFrameCapsSubsteps(t *testing.T) {
	cfg := config.Default()
	g := newTestGame(t, cfg)

	g.Frame(1, controls.Frame{})
	assert.Equal(t, cfg.Physics.MaxSubsteps, g.Steps())
	assert.Zero(t, g.accumulator, "backlog dropped")
}

func TestReloadWaitsForIdle(t *testing.T) {
	cfg := config.Default()
	g := newTestGame(t, cfg)
	ch := make(chan *config.Config, 1)
	g.Watch(ch)

	g.Frame(cfg.Physics.FixedStep, controls.Frame{TogglePressed: true})
	require.True(t, g.Coordinator().IsSwitching())

	next := config.Default()
	next.Camera.RotationDuration = 2
	ch <- next
	g.Frame(cfg.Physics.FixedStep, controls.Frame{})
	assert.NotEqual(t, float32(2), g.controller.Duration(), "held back mid-switch")

	for i := 0; i < 120 && g.Coordinator().IsSwitching(); i++ {
		g.Frame(cfg.Physics.FixedStep, controls.Frame{})
	}
	require.False(t, g.Coordinator().IsSwitching())
	g.Frame(cfg.Physics.FixedStep, controls.Frame{})
	assert.Equal(t, float32(2), g.controller.Duration())
	assert.Equal(t, float32(2), g.Config().Camera.RotationDuration)
}

func TestApplyConfigUpdatesOverlapAndGroundMask(t *testing.T) {
	cfg := config.Default()
	g := newTestGame(t, cfg)
	for i := 0; i < 60; i++ {
		g.Frame(cfg.Physics.FixedStep, controls.Frame{})
	}
	require.True(t, g.Motor().Grounded())

	next := config.Default()
	next.Depenetration.Iterations = 9
	next.Depenetration.GroundLayers = []string{"default"}
	require.True(t, g.ApplyConfig(next))

	s := g.Coordinator().Settings()
	assert.Equal(t, 9, s.OverlapIterations)
	assert.Equal(t, physics.LayerDefault.Mask(), s.OverlapMask)

	g.Frame(cfg.Physics.FixedStep, controls.Frame{})
	assert.False(t, g.Motor().Grounded(), "floor is no longer ground")
}

func TestApplyConfigRejectsUnknownGroundLayer(t *testing.T) {
	cfg := config.Default()
	g := newTestGame(t, cfg)
	before := g.Coordinator().Settings()

	next := config.Default()
	next.Depenetration.Iterations = 9
	next.Depenetration.GroundLayers = []string{"lava"}
	assert.True(t, g.ApplyConfig(next), "dropped rather than retried")
	assert.Equal(t, before, g.Coordinator().Settings())
	assert.Equal(t, before.OverlapIterations, g.Config().Depenetration.Iterations)
}

func TestGoalTrigger(t *testing.T) {
	g := newTestGame(t, config.Default())
	assert.False(t, g.GoalReached())

	g.Motor().Body().SetPosition(math.Vec3{X: 12, Y: 1, Z: 0})
	g.World().SyncTransforms()
	g.Frame(g.Config().Physics.FixedStep, controls.Frame{})
	assert.True(t, g.GoalReached())
}

func TestScriptPlayerEdges(t *testing.T) {
	p := newScriptPlayer(Script{
		{At: 20 * time.Millisecond, Action: controls.Jump},
		{At: 0, Action: controls.MoveRight, Pressed: true},
		{At: 10 * time.Millisecond, Action: controls.Jump, Pressed: true},
		{At: 10 * time.Millisecond, Action: controls.Toggle, Pressed: true},
	})

	f := p.frame(5 * time.Millisecond)
	assert.True(t, f.Right)
	assert.False(t, f.JumpPressed)

	f = p.frame(15 * time.Millisecond)
	assert.True(t, f.JumpPressed)
	assert.True(t, f.TogglePressed)
	assert.True(t, f.Right, "held keys persist")

	f = p.frame(25 * time.Millisecond)
	assert.True(t, f.JumpReleased)
	assert.False(t, f.TogglePressed, "toggle fires once")
}

func TestCoordinatorSettingsFromConfig(t *testing.T) {
	cfg := config.Default()
	s, err := CoordinatorSettings(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Projection.ViewAxes[1], s.Views[1].Axis)
	assert.Equal(t, cfg.Camera.ViewYaw[1], s.Views[1].Yaw)
	assert.Equal(t, cfg.Depenetration.Iterations, s.OverlapIterations)

	cfg.Depenetration.GroundLayers = []string{"lava"}
	_, err = CoordinatorSettings(cfg)
	assert.Error(t, err)
}
