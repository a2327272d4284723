package camera

import (
	"fmt"

	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/pkg/math"
)

// DeadZone decides the height the pivot should aim for given the target height.
type DeadZone interface {
	Desired(pivotY, targetY float32) float32
}

// UpOnlyDeadZone lets the target rise Size above the pivot before following, and follows
// any drop below the pivot immediately.
type UpOnlyDeadZone struct {
	Size float32
}

// Threshold returns the height the target must exceed before the pivot rises.
func (d UpOnlyDeadZone) Threshold(pivotY float32) float32 {
	return pivotY + d.Size
}

// Desired implements DeadZone.
func (d UpOnlyDeadZone) Desired(pivotY, targetY float32) float32 {
	switch {
	case targetY > d.Threshold(pivotY):
		return targetY - d.Size
	case targetY < pivotY:
		return targetY
	}
	return pivotY
}

// BandDeadZone ignores target motion within Size of the pivot in either direction.
type BandDeadZone struct {
	Size float32
}

// Desired implements DeadZone.
func (d BandDeadZone) Desired(pivotY, targetY float32) float32 {
	switch {
	case targetY > pivotY+d.Size:
		return targetY - d.Size
	case targetY < pivotY-d.Size:
		return targetY + d.Size
	}
	return pivotY
}

// Smoothing moves the pivot height towards the desired height.
type Smoothing interface {
	Step(current, target, dt float32) float32
}

// ConstantSpeed moves at a fixed rate.
type ConstantSpeed struct {
	Speed float32
}

// Step implements Smoothing.
func (s ConstantSpeed) Step(current, target, dt float32) float32 {
	return math.MoveTowards(current, target, s.Speed*dt)
}

// CriticallyDamped eases in like a damped spring.
type CriticallyDamped struct {
	SmoothTime float32
	MaxSpeed   float32

	velocity float32
}

// Step implements Smoothing.
func (s *CriticallyDamped) Step(current, target, dt float32) float32 {
	maxSpeed := s.MaxSpeed
	if maxSpeed <= 0 {
		maxSpeed = 1e6
	}
	return math.SmoothDamp(current, target, &s.velocity, s.SmoothTime, maxSpeed, dt)
}

// FollowSettings configures a VerticalFollow.
type FollowSettings struct {
	DeadZoneMode string  `yaml:"dead_zone_mode"` // "up_only" or "band"
	DeadZone     float32 `yaml:"dead_zone"`
	Smoothing    string  `yaml:"smoothing"` // "constant_speed" or "critically_damped"
	Speed        float32 `yaml:"speed"`
	SmoothTime   float32 `yaml:"smooth_time"`
	Offset       float32 `yaml:"offset"`
}

// NewDeadZone builds the configured dead zone.
func (s FollowSettings) NewDeadZone() (DeadZone, error) {
	switch s.DeadZoneMode {
	case "", "up_only":
		return UpOnlyDeadZone{Size: s.DeadZone}, nil
	case "band":
		return BandDeadZone{Size: s.DeadZone}, nil
	}
	return nil, fmt.Errorf("unknown dead zone mode %q", s.DeadZoneMode)
}

// NewSmoothing builds the configured smoothing strategy.
func (s FollowSettings) NewSmoothing() (Smoothing, error) {
	switch s.Smoothing {
	case "", "critically_damped":
		return &CriticallyDamped{SmoothTime: s.SmoothTime}, nil
	case "constant_speed":
		return ConstantSpeed{Speed: s.Speed}, nil
	}
	return nil, fmt.Errorf("unknown smoothing %q", s.Smoothing)
}

// VerticalFollow is the only writer of the rig's pivot Y.
type VerticalFollow struct {
	rig       *Rig
	target    *scene.Node
	offset    float32
	deadZone  DeadZone
	smoothing Smoothing
}

// NewVerticalFollow creates a follower for target.
func NewVerticalFollow(rig *Rig, target *scene.Node, offset float32, dz DeadZone, sm Smoothing) *VerticalFollow {
	return &VerticalFollow{rig: rig, target: target, offset: offset, deadZone: dz, smoothing: sm}
}

// SetTarget changes the followed node.
func (f *VerticalFollow) SetTarget(target *scene.Node) { f.target = target }

// Update moves the pivot height for this frame.
func (f *VerticalFollow) Update(dt float32) {
	if f.rig == nil || !f.target.Alive() {
		return
	}
	pivotY := f.rig.PivotPosition.Y
	targetY := f.target.WorldPosition().Y + f.offset
	desired := f.deadZone.Desired(pivotY, targetY)
	f.rig.PivotPosition.Y = f.smoothing.Step(pivotY, desired, dt)
}

// Snap moves the pivot straight to the desired height, used after teleports.
func (f *VerticalFollow) Snap() {
	if f.rig == nil || !f.target.Alive() {
		return
	}
	f.rig.PivotPosition.Y = f.target.WorldPosition().Y + f.offset
}
