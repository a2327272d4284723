package projection

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/pkg/math"
)

// Motor is the part of the player motor the switch may touch.
type Motor interface {
	Body() *physics.Body
	BeginRotationFreeze()
	EndRotationFreeze()
	SetLateralEnabled(enabled bool)
	SetPlaneLock(p plane.Plane, value float32)
	ActivePlane() plane.Plane
}

// PlayerAdapter prepares the player for a rotation and restores it afterwards.
type PlayerAdapter struct {
	motor Motor
	body  *physics.Body
	log   *zap.Logger
}

// NewPlayerAdapter wraps motor. It returns nil when motor has no body, which the
// coordinator treats as a player-less scene.
func NewPlayerAdapter(motor Motor, log *zap.Logger) *PlayerAdapter {
	if log == nil {
		log = zap.NewNop()
	}
	if motor == nil || motor.Body() == nil || motor.Body().Node == nil {
		log.Warn("player adapter has no body; switches will be camera-only")
		return nil
	}
	return &PlayerAdapter{motor: motor, body: motor.Body(), log: log}
}

// PrepareForRotation freezes the motor and, with jumpOnly, disables lateral input. With
// makeKinematic a dynamic body has its velocities zeroed and becomes kinematic. It
// returns the kinematic flag the body had before so it can be restored exactly.
func (a *PlayerAdapter) PrepareForRotation(makeKinematic, jumpOnly bool) bool {
	a.motor.BeginRotationFreeze()
	if jumpOnly {
		a.motor.SetLateralEnabled(false)
	}

	original := a.body.Kinematic
	if !original && makeKinematic {
		a.body.Velocity = math.Vec3{}
		a.body.AngularVelocity = math.Vec3{}
		a.body.Kinematic = true
	}
	return original
}

// RestoreAfterRotation puts back the kinematic flag, re-enables lateral input and
// unfreezes the motor.
func (a *PlayerAdapter) RestoreAfterRotation(originalKinematic, jumpOnly bool) {
	a.body.Kinematic = originalKinematic
	if jumpOnly {
		a.motor.SetLateralEnabled(true)
	}
	a.motor.EndRotationFreeze()
}

// MapVelocityBetweenAxes moves the lateral component of v from the slot used under
// source to the slot used under target. The sign is kept, Y passes through and the
// other horizontal component is zero.
func (a *PlayerAdapter) MapVelocityBetweenAxes(v math.Vec3, source, target plane.Axis) math.Vec3 {
	return MapVelocityBetweenAxes(v, source, target)
}

// MapVelocityBetweenAxes is the receiver-free form of PlayerAdapter.MapVelocityBetweenAxes.
func MapVelocityBetweenAxes(v math.Vec3, source, target plane.Axis) math.Vec3 {
	lateral := v.Z
	if source == plane.FlattenZ {
		lateral = v.X
	}
	out := math.Vec3{Y: v.Y}
	if target == plane.FlattenZ {
		out.X = lateral
	} else {
		out.Z = lateral
	}
	return out
}

// SetPlayerPlane moves the player onto p and pins the other axis at constant.
func (a *PlayerAdapter) SetPlayerPlane(p plane.Plane, constant float32) {
	a.motor.SetPlaneLock(p, constant)
}

// Velocity returns the body's linear velocity. It is readable while kinematic.
func (a *PlayerAdapter) Velocity() math.Vec3 { return a.body.Velocity }

// SetVelocity overwrites the body's linear velocity.
func (a *PlayerAdapter) SetVelocity(v math.Vec3) { a.body.Velocity = v }

// IsKinematic reports the body's kinematic flag.
func (a *PlayerAdapter) IsKinematic() bool { return a.body.Kinematic }

// Position returns the body's world position.
func (a *PlayerAdapter) Position() math.Vec3 { return a.body.Position() }

// SetPosition teleports the body.
func (a *PlayerAdapter) SetPosition(p math.Vec3) { a.body.SetPosition(p) }

// Collider returns the body's collider, which may be nil.
func (a *PlayerAdapter) Collider() *physics.Collider { return a.body.Collider }

// Node returns the body's transform.
func (a *PlayerAdapter) Node() *scene.Node { return a.body.Node }
