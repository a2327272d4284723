// Package player implements the plane-locked player motor.
package player

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/game/motion"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/pkg/math"
)

// MotionState is a snapshot of the motor's plane and freeze flags.
type MotionState struct {
	ActivePlane      plane.Plane
	PlaneLockEnabled bool
	PlaneLockAxis    plane.Plane // the axis whose coordinate is pinned
	PlaneLockValue   float32
	LateralEnabled   bool
	RotationFrozen   bool
}

// Motor drives a rigid body along one world axis while pinning the other.
type Motor struct {
	body   *physics.Body
	motion *motion.Motion
	probe  motion.GroundProbe
	log    *zap.Logger

	state  MotionState
	move   float32
	ground motion.GroundInfo
}

// NewMotor creates a motor for body moving on the X plane with lateral input enabled.
// groundMask selects what the ground probe may stand on.
func NewMotor(body *physics.Body, world physics.World, groundMask physics.LayerMask, settings motion.Settings, log *zap.Logger) *Motor {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Motor{
		body:   body,
		motion: motion.New(settings),
		probe: motion.GroundProbe{
			World:    world,
			Mask:     groundMask,
			Distance: settings.ProbeDistance,
			Skin:     settings.GroundSkin,
		},
		log: log,
		state: MotionState{
			ActivePlane:    plane.X,
			PlaneLockAxis:  plane.Z,
			LateralEnabled: true,
		},
	}
	m.applyConstraints()
	return m
}

// Body returns the driven rigid body.
func (m *Motor) Body() *physics.Body { return m.body }

// State returns a copy of the motion state.
func (m *Motor) State() MotionState { return m.state }

// Grounded reports the result of the last ground probe.
func (m *Motor) Grounded() bool { return m.ground.Grounded }

// SetSettings replaces the locomotion tuning.
func (m *Motor) SetSettings(s motion.Settings) {
	m.motion.Settings = s
	m.probe.Distance = s.ProbeDistance
	m.probe.Skin = s.GroundSkin
}

// SetMove sets the lateral stick value in [-1, 1] along the active plane's positive axis.
func (m *Motor) SetMove(x float32) {
	m.move = math.Clamp(x, -1, 1)
}

// QueueJump buffers a jump; it fires on the next tick that allows it.
func (m *Motor) QueueJump() {
	m.motion.QueueJump()
}

// JumpCanceled cuts a rising jump short.
func (m *Motor) JumpCanceled() {
	if m.state.RotationFrozen {
		return
	}
	m.body.Velocity.Y = m.motion.JumpCanceled(m.body.Velocity.Y)
}

// BeginRotationFreeze stops the motor from integrating the body.
func (m *Motor) BeginRotationFreeze() {
	m.state.RotationFrozen = true
}

// EndRotationFreeze resumes integration on the next tick. The body was moved by the
// switch, so ground contact and the coyote and slide windows start over.
func (m *Motor) EndRotationFreeze() {
	m.state.RotationFrozen = false
	m.ground = motion.GroundInfo{}
	m.motion.Reset()
}

// SetGroundMask changes what the ground probe may stand on.
func (m *Motor) SetGroundMask(mask physics.LayerMask) {
	m.probe.Mask = mask
}

// SetLateralEnabled toggles lateral input. Jumps stay live either way.
func (m *Motor) SetLateralEnabled(enabled bool) {
	m.state.LateralEnabled = enabled
}

// ActivePlane returns the plane the player moves along.
func (m *Motor) ActivePlane() plane.Plane { return m.state.ActivePlane }

// SetActivePlane switches the movement plane, reapplying body constraints on change.
func (m *Motor) SetActivePlane(p plane.Plane) {
	if p == m.state.ActivePlane {
		return
	}
	m.state.ActivePlane = p
	m.state.PlaneLockAxis = p.Locked()
	m.applyConstraints()
	m.log.Debug("active plane changed", zap.Stringer("plane", p))
}

// SetPlaneLock moves the player onto plane p and pins the other axis to value.
func (m *Motor) SetPlaneLock(p plane.Plane, value float32) {
	m.SetActivePlane(p)
	m.state.PlaneLockEnabled = true
	m.state.PlaneLockAxis = p.Locked()
	m.state.PlaneLockValue = value
}

// applyConstraints freezes horizontal rotation always and position on the locked axis.
func (m *Motor) applyConstraints() {
	c := m.body.Constraints &^ (physics.FreezePositionX | physics.FreezePositionZ)
	c |= physics.FreezeRotationX | physics.FreezeRotationZ
	if m.state.ActivePlane == plane.X {
		c |= physics.FreezePositionZ
	} else {
		c |= physics.FreezePositionX
	}
	m.body.Constraints = c
}

// EnforcePlaneLock snaps the locked coordinate to the lock value and zeroes velocity
// along it.
func (m *Motor) EnforcePlaneLock() {
	if !m.state.PlaneLockEnabled {
		return
	}
	pos := m.body.Position()
	vel := m.body.Velocity
	if m.state.PlaneLockAxis == plane.Z {
		pos.Z = m.state.PlaneLockValue
		vel.Z = 0
	} else {
		pos.X = m.state.PlaneLockValue
		vel.X = 0
	}
	m.body.SetPosition(pos)
	m.body.Velocity = vel
}

// FixedUpdate runs one physics tick of locomotion. It does nothing while frozen for a
// perspective switch, which leaves the body entirely to the switch.
func (m *Motor) FixedUpdate(dt float32) {
	if m.state.RotationFrozen {
		return
	}
	m.EnforcePlaneLock()

	vel := m.body.Velocity
	m.ground = m.probe.Check(m.body.Collider.Bounds(), m.state.ActivePlane, vel.Y)

	move := m.move
	if !m.state.LateralEnabled {
		move = 0
	}
	out := m.motion.Step(motion.Input{
		Lateral:  m.lateral(vel),
		Vertical: vel.Y,
		Move:     move,
		Grounded: m.ground.Grounded,
		DT:       dt,
	})
	if out.Jumped {
		m.log.Debug("jump", zap.Float32("vy", out.Vertical))
	}

	vel.Y = out.Vertical
	if m.state.ActivePlane == plane.X {
		vel.X = out.Lateral
		vel.Z = 0
	} else {
		vel.Z = out.Lateral
		vel.X = 0
	}
	m.body.Velocity = vel
}

func (m *Motor) lateral(v math.Vec3) float32 {
	if m.state.ActivePlane == plane.X {
		return v.X
	}
	return v.Z
}
