package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/internal/game/motion"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/pkg/math"
)

const dt = float32(1.0 / 60)

type rig struct {
	world *physics.BoxWorld
	body  *physics.Body
	motor *Motor
}

func newRig(t *testing.T, spawn math.Vec3) *rig {
	t.Helper()
	w := physics.NewBoxWorld()
	w.AddCollider(physics.NewBoxCollider(scene.NewMeshNode("ground", math.Vec3{}), math.Vec3{X: 100, Y: 1, Z: 100}, physics.LayerGround))

	node := scene.NewNode("player", spawn)
	body := physics.NewBody(node, physics.NewBoxCollider(node, math.Vec3{X: 1, Y: 1, Z: 1}, physics.LayerPlayer))
	body.CollisionMask = physics.LayerGround.Mask()
	w.AddBody(body)

	return &rig{
		world: w,
		body:  body,
		motor: NewMotor(body, w, physics.LayerGround.Mask(), motion.DefaultSettings(), nil),
	}
}

func (r *rig) tick(n int) {
	for i := 0; i < n; i++ {
		r.motor.FixedUpdate(dt)
		r.world.Step(dt)
	}
}

func TestPlaneLockPinsLockedAxis(t *testing.T) {
	r := newRig(t, math.Vec3{X: 0, Y: 1, Z: 3})
	r.motor.SetPlaneLock(plane.X, 7.0)
	r.body.Velocity = math.Vec3{X: 2, Z: 9}
	r.motor.SetMove(1)

	for i := 0; i < 30; i++ {
		r.tick(1)
		require.Equal(t, float32(7.0), r.body.Position().Z)
		require.Zero(t, r.body.Velocity.Z)
	}
	assert.Greater(t, r.body.Position().X, float32(0), "lateral input still moves the free axis")
}

func TestPlaneLockOnZPlanePinsX(t *testing.T) {
	r := newRig(t, math.Vec3{X: 4, Y: 1, Z: 0})
	r.motor.SetPlaneLock(plane.Z, -2.5)
	r.motor.SetMove(-1)
	r.tick(20)

	assert.Equal(t, float32(-2.5), r.body.Position().X)
	assert.Less(t, r.body.Position().Z, float32(0))
	state := r.motor.State()
	assert.Equal(t, plane.Z, state.ActivePlane)
	assert.Equal(t, plane.X, state.PlaneLockAxis)
	assert.True(t, state.PlaneLockEnabled)
}

func TestSetActivePlaneReappliesConstraints(t *testing.T) {
	r := newRig(t, math.Vec3{Y: 1})
	c := r.body.Constraints
	assert.True(t, c.Has(physics.FreezePositionZ))
	assert.True(t, c.Has(physics.FreezeRotationX|physics.FreezeRotationZ))

	r.motor.SetActivePlane(plane.Z)
	c = r.body.Constraints
	assert.True(t, c.Has(physics.FreezePositionX))
	assert.False(t, c.Has(physics.FreezePositionZ))
	assert.True(t, c.Has(physics.FreezeRotationX|physics.FreezeRotationZ))
}

func TestFrozenMotorSkipsIntegration(t *testing.T) {
	r := newRig(t, math.Vec3{Y: 5})
	r.motor.BeginRotationFreeze()
	r.body.Velocity = math.Vec3{X: 3, Y: 1}

	r.motor.FixedUpdate(dt)
	assert.Equal(t, math.Vec3{X: 3, Y: 1}, r.body.Velocity, "no gravity or inertia while frozen")

	r.motor.EndRotationFreeze()
	r.motor.FixedUpdate(dt)
	assert.Less(t, r.body.Velocity.Y, float32(1))
}

func TestLateralDisabledKeepsJumpLive(t *testing.T) {
	r := newRig(t, math.Vec3{Y: 1})
	r.tick(10)
	require.True(t, r.motor.Grounded())

	r.motor.SetLateralEnabled(false)
	r.motor.SetMove(1)
	r.motor.QueueJump()
	r.motor.FixedUpdate(dt)

	assert.Zero(t, r.body.Velocity.X)
	assert.Equal(t, motion.DefaultSettings().JumpSpeed, r.body.Velocity.Y)
}

func TestJumpCanceledCutsVelocity(t *testing.T) {
	r := newRig(t, math.Vec3{Y: 1})
	r.body.Velocity.Y = 10
	r.motor.JumpCanceled()
	assert.InDelta(t, 5, r.body.Velocity.Y, 1e-6)

	r.motor.BeginRotationFreeze()
	r.motor.JumpCanceled()
	assert.InDelta(t, 5, r.body.Velocity.Y, 1e-6, "ignored while frozen")
}

func TestJumpQueuedDuringFreezeFiresAfter(t *testing.T) {
	r := newRig(t, math.Vec3{Y: 1})
	r.tick(10)
	require.True(t, r.motor.Grounded())

	r.motor.BeginRotationFreeze()
	r.motor.QueueJump()
	r.motor.FixedUpdate(dt)
	r.motor.EndRotationFreeze()
	assert.False(t, r.motor.Grounded(), "contact is re-probed after the freeze")

	r.motor.FixedUpdate(dt)
	assert.Equal(t, motion.DefaultSettings().JumpSpeed, r.body.Velocity.Y)
}

func TestSetGroundMaskChangesFooting(t *testing.T) {
	r := newRig(t, math.Vec3{Y: 1})
	r.tick(10)
	require.True(t, r.motor.Grounded())

	r.motor.SetGroundMask(physics.LayerDefault.Mask())
	r.motor.FixedUpdate(dt)
	assert.False(t, r.motor.Grounded())
}
