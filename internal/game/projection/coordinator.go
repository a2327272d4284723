package projection

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/pkg/math"
)

// View is one of the two camera perspectives.
type View struct {
	Yaw  float32    `yaml:"yaw"`
	Axis plane.Axis `yaml:"axis"`
}

// SwitchSettings are the behavior toggles of a switch.
type SwitchSettings struct {
	RotatePlayer   bool `yaml:"rotate_player"`
	MakeKinematic  bool `yaml:"make_kinematic"`
	JumpOnly       bool `yaml:"jump_only"`
	FixY           bool `yaml:"fix_y"`
	ResolveOverlap bool `yaml:"resolve_overlap"`
}

// DefaultSwitchSettings enables every toggle.
func DefaultSwitchSettings() SwitchSettings {
	return SwitchSettings{
		RotatePlayer:   true,
		MakeKinematic:  true,
		JumpOnly:       true,
		FixY:           true,
		ResolveOverlap: true,
	}
}

// Settings configures a Coordinator.
type Settings struct {
	Views          [2]View
	InitialView    int
	PivotOffset    math.Vec3
	CameraDistance float32
	Switch         SwitchSettings

	// passed to the depenetration solver
	OverlapMask       physics.LayerMask
	OverlapIterations int
}

// Geometry is the terrain source a switch re-projects.
type Geometry interface {
	Rebuild(axis plane.Axis)
	GetPlaneZ() float32
	GetPlaneX() float32
	RotationCenter() *scene.Node
}

// Depenetrator lifts a collider out of overlapping ground.
type Depenetrator interface {
	ResolveVerticalOverlapUpwards(collider *physics.Collider, transform *scene.Node, groundMask physics.LayerMask, iterations int, conservativeFallback bool) bool
}

// Syncer commits manual transform writes to the physics broad phase.
type Syncer interface {
	SyncTransforms()
}

// Phase is the coordinator's state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRotating
)

func (p Phase) String() string {
	if p == PhaseRotating {
		return "rotating"
	}
	return "idle"
}

// SwitchEvent describes a switch to observers.
type SwitchEvent struct {
	From, To         int
	FromAxis, ToAxis plane.Axis
}

// switchState holds what a running switch captured when it started.
type switchState struct {
	event             SwitchEvent
	startYaw          float32
	targetYaw         float32
	preVelocity       math.Vec3
	prePosition       math.Vec3
	hold              math.Vec3 // X and Z the player is pinned to while rotating
	fixedY            float32
	originalKinematic bool
}

// Coordinator runs perspective switches. TogglePerspective starts one; Advance drives it
// a frame at a time until the camera has turned and the world is re-projected.
type Coordinator struct {
	settings   Settings
	controller *Controller
	geometry   Geometry
	player     *PlayerAdapter
	camera     *CameraAdapter
	solver     Depenetrator
	physics    Syncer
	log        *zap.Logger

	current int
	phase   Phase
	sw      switchState

	onStarted   []func(SwitchEvent)
	onCompleted []func(SwitchEvent)
}

// NewCoordinator wires a coordinator. geometry, player, camera, solver and physics may
// each be nil; the switch then skips the parts that need them.
func NewCoordinator(settings Settings, controller *Controller, geometry Geometry, player *PlayerAdapter, camera *CameraAdapter, solver Depenetrator, physics Syncer, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	if controller == nil {
		controller = NewController(0, nil)
	}
	if camera == nil {
		camera = NewCameraAdapter(nil, log)
	}
	if geometry == nil {
		log.Warn("no geometry source; terrain will not be re-projected")
	}
	if player == nil {
		log.Warn("no player; switches rotate the camera only")
	}
	if settings.InitialView != 0 && settings.InitialView != 1 {
		log.Warn("initial view out of range; using view 0", zap.Int("view", settings.InitialView))
		settings.InitialView = 0
	}
	return &Coordinator{
		settings:   settings,
		controller: controller,
		geometry:   geometry,
		player:     player,
		camera:     camera,
		solver:     solver,
		physics:    physics,
		log:        log,
		current:    settings.InitialView,
	}
}

// Initialize puts the camera, terrain and player into the current view without
// animating.
func (c *Coordinator) Initialize() {
	view := c.settings.Views[c.current]
	c.camera.SetCameraDistance(c.settings.CameraDistance)
	c.camera.RepositionPivotToCenter(c.rotationCenter(), c.settings.PivotOffset)
	c.camera.SetYaw(view.Yaw)
	if c.geometry != nil {
		c.geometry.Rebuild(view.Axis)
	}
	if c.player != nil {
		p, value := c.planeLockFor(view.Axis)
		c.player.SetPlayerPlane(p, value)
	}
	c.log.Info("perspective initialized",
		zap.Int("view", c.current),
		zap.Stringer("axis", view.Axis),
	)
}

// OnSwitchStarted registers fn to run when a switch begins.
func (c *Coordinator) OnSwitchStarted(fn func(SwitchEvent)) {
	c.onStarted = append(c.onStarted, fn)
}

// OnSwitchCompleted registers fn to run after a switch has fully finished.
func (c *Coordinator) OnSwitchCompleted(fn func(SwitchEvent)) {
	c.onCompleted = append(c.onCompleted, fn)
}

// IsSwitching reports whether a switch is in progress.
func (c *Coordinator) IsSwitching() bool { return c.phase != PhaseIdle }

// JumpOnlyDuringSwitch reports whether lateral input is suppressed while switching.
func (c *Coordinator) JumpOnlyDuringSwitch() bool { return c.settings.Switch.JumpOnly }

// Phase returns the current phase.
func (c *Coordinator) Phase() Phase { return c.phase }

// CurrentView returns the active view index.
func (c *Coordinator) CurrentView() int { return c.current }

// CurrentAxis returns the projection axis of the active view.
func (c *Coordinator) CurrentAxis() plane.Axis { return c.settings.Views[c.current].Axis }

// Settings returns the coordinator settings.
func (c *Coordinator) Settings() Settings { return c.settings }

// SetSwitchSettings replaces the behavior toggles. It refuses while switching, since a
// running switch captured the old toggles when it prepared the player.
func (c *Coordinator) SetSwitchSettings(s SwitchSettings) bool {
	if c.IsSwitching() {
		return false
	}
	c.settings.Switch = s
	return true
}

// SetOverlap changes the ground mask and iteration cap used for overlap resolution.
func (c *Coordinator) SetOverlap(mask physics.LayerMask, iterations int) {
	c.settings.OverlapMask = mask
	c.settings.OverlapIterations = iterations
}

// SetPivotOffset changes where the pivot sits relative to the rotation center.
func (c *Coordinator) SetPivotOffset(offset math.Vec3) {
	c.settings.PivotOffset = offset
}

// TogglePerspective starts a switch to the other view. It does nothing while a switch is
// already running.
func (c *Coordinator) TogglePerspective() {
	if c.phase != PhaseIdle {
		c.log.Debug("toggle ignored; switch in progress")
		return
	}

	from := c.current
	to := 1 - from
	c.sw = switchState{
		event: SwitchEvent{
			From:     from,
			To:       to,
			FromAxis: c.settings.Views[from].Axis,
			ToAxis:   c.settings.Views[to].Axis,
		},
		startYaw:  c.camera.Yaw(),
		targetYaw: c.settings.Views[to].Yaw,
	}

	c.camera.RepositionPivotToCenter(c.rotationCenter(), c.settings.PivotOffset)

	if c.player != nil {
		sw := c.settings.Switch
		c.sw.preVelocity = c.player.Velocity()
		c.sw.originalKinematic = c.player.PrepareForRotation(sw.MakeKinematic, sw.JumpOnly)

		pre := c.player.Position()
		c.sw.prePosition = pre
		c.sw.fixedY = pre.Y
		c.sw.hold = inverseProjection(pre, c.sw.event.FromAxis)
	}

	c.controller.BeginSwitch(to)
	c.phase = PhaseRotating

	c.log.Info("switch started",
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Stringer("axis", c.sw.event.ToAxis),
	)
	for _, fn := range c.onStarted {
		fn(c.sw.event)
	}
}

// Advance drives a running switch by dt seconds. The frame the rotation finishes also
// re-projects terrain and places the player on the new plane.
func (c *Coordinator) Advance(dt float32) {
	if c.phase != PhaseRotating {
		return
	}
	progress, done := c.controller.UpdateRotation(dt)
	if !done {
		c.camera.UpdateRotation(c.sw.startYaw, c.sw.targetYaw, progress)
		c.holdPlayer()
		return
	}
	c.camera.SetYaw(c.sw.targetYaw)
	c.finish()
}

// holdPlayer pins the player at its inverse-projection coordinates for this frame.
func (c *Coordinator) holdPlayer() {
	if c.player == nil {
		return
	}
	sw := c.settings.Switch

	pos := c.player.Position()
	switch {
	case sw.RotatePlayer:
		pos = math.Vec3{X: c.sw.hold.X, Y: c.sw.fixedY, Z: c.sw.hold.Z}
	case sw.FixY:
		pos.Y = c.sw.fixedY
	default:
		return
	}
	c.player.SetPosition(pos)
	if !c.player.IsKinematic() {
		// a dynamic body would otherwise drift between frames; the captured velocity is
		// remapped at completion
		v := c.player.Velocity()
		if sw.RotatePlayer {
			v = math.Vec3{}
		} else {
			v.Y = 0
		}
		c.player.SetVelocity(v)
	}
	c.sync()

	if sw.ResolveOverlap && c.resolve(false) {
		if y := c.player.Position().Y; y > c.sw.fixedY {
			c.sw.fixedY = y
		}
	}
}

func (c *Coordinator) finish() {
	ev := c.sw.event
	c.current = ev.To

	if c.geometry != nil {
		c.geometry.Rebuild(ev.ToAxis)
	}

	if c.player != nil {
		sw := c.settings.Switch

		pos := c.player.Position()
		c.player.SetPosition(c.seamPosition(pos.Y))
		c.sync()

		p, value := c.planeLockFor(ev.ToAxis)
		c.player.SetPlayerPlane(p, value)
		c.resolve(true)

		c.player.RestoreAfterRotation(c.sw.originalKinematic, sw.JumpOnly)

		v := c.player.MapVelocityBetweenAxes(c.sw.preVelocity, ev.FromAxis, ev.ToAxis)
		if !c.player.IsKinematic() {
			c.player.SetVelocity(v)
		}
	}

	c.controller.CompleteSwitch()
	c.phase = PhaseIdle

	c.log.Info("switch completed",
		zap.Int("view", c.current),
		zap.Stringer("axis", ev.ToAxis),
	)
	for _, fn := range c.onCompleted {
		fn(ev)
	}
}

// inverseProjection returns the X and Z a player at pre is held at while turning away
// from source.
func inverseProjection(pre math.Vec3, source plane.Axis) math.Vec3 {
	if source == plane.FlattenZ {
		return math.Vec3{X: pre.X, Z: -pre.X}
	}
	return math.Vec3{X: -pre.Z, Z: pre.Z}
}

// seamPosition is where the player lands on the new plane, using the seams as they are
// after the rebuild.
func (c *Coordinator) seamPosition(y float32) math.Vec3 {
	pre := c.sw.prePosition
	seamX, seamZ := c.seams(pre)
	if c.sw.event.FromAxis == plane.FlattenZ {
		return math.Vec3{X: seamX, Y: y, Z: -pre.X}
	}
	return math.Vec3{X: -pre.Z, Y: y, Z: seamZ}
}

// planeLockFor returns the movement plane and lock constant for axis.
func (c *Coordinator) planeLockFor(axis plane.Axis) (plane.Plane, float32) {
	var pos math.Vec3
	if c.player != nil {
		pos = c.player.Position()
	}
	seamX, seamZ := c.seams(pos)
	if axis == plane.FlattenZ {
		return plane.X, seamZ
	}
	return plane.Z, seamX
}

// seams returns the current plane constants. Without geometry the player's own
// coordinates stand in, which keeps it where it is.
func (c *Coordinator) seams(fallback math.Vec3) (x, z float32) {
	if c.geometry == nil {
		return fallback.X, fallback.Z
	}
	return c.geometry.GetPlaneX(), c.geometry.GetPlaneZ()
}

func (c *Coordinator) resolve(conservative bool) bool {
	if c.solver == nil || c.player == nil || c.player.Collider() == nil {
		return false
	}
	iterations := c.settings.OverlapIterations
	if iterations <= 0 {
		iterations = 1
	}
	return c.solver.ResolveVerticalOverlapUpwards(c.player.Collider(), c.player.Node(), c.settings.OverlapMask, iterations, conservative)
}

func (c *Coordinator) rotationCenter() *scene.Node {
	if c.geometry == nil {
		return nil
	}
	return c.geometry.RotationCenter()
}

func (c *Coordinator) sync() {
	if c.physics != nil {
		c.physics.SyncTransforms()
	}
}
