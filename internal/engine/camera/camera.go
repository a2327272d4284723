// Package camera provides the yaw-only camera rig used by the perspective switch and the
// vertical follow component that owns the rig's height.
package camera

import (
	"github.com/Faultbox/planeshift/pkg/math"
)

// Rig is a pivot that only yaws, with the physical camera as its single child.
type Rig struct {
	// Pivot transform (world space)
	PivotPosition math.Vec3
	PivotYaw      float32 // degrees around world up

	// Camera transform relative to the pivot
	CameraLocalPosition math.Vec3
	CameraLocalRotation math.Quat

	hasCamera bool
}

// NewRig creates a rig with a child camera at the given distance behind the pivot.
func NewRig(pivot math.Vec3, yaw, distance float32) *Rig {
	r := &Rig{
		PivotPosition: pivot,
		PivotYaw:      yaw,
		hasCamera:     true,
	}
	r.PlaceCamera(distance)
	return r
}

// NewPivotOnly creates a rig without a child camera.
func NewPivotOnly(pivot math.Vec3, yaw float32) *Rig {
	return &Rig{
		PivotPosition:       pivot,
		PivotYaw:            yaw,
		CameraLocalRotation: math.QuatIdentity(),
	}
}

// HasCamera reports whether the pivot has a child camera.
func (r *Rig) HasCamera() bool { return r.hasCamera }

// PlaceCamera puts the child camera at local (0, 0, -|distance|) with no local rotation.
// It reports false when the rig has no child camera.
func (r *Rig) PlaceCamera(distance float32) bool {
	if !r.hasCamera {
		return false
	}
	r.CameraLocalPosition = math.Vec3{X: 0, Y: 0, Z: -math.Abs(distance)}
	r.CameraLocalRotation = math.QuatIdentity()
	return true
}

// PivotRotation returns the pivot's world rotation.
func (r *Rig) PivotRotation() math.Quat {
	return math.QuatFromYaw(r.PivotYaw)
}

// CameraPosition returns the camera position in world space.
func (r *Rig) CameraPosition() math.Vec3 {
	return r.PivotPosition.Add(r.PivotRotation().Rotate(r.CameraLocalPosition))
}

// ForwardDirection returns the camera's forward direction on the XZ plane.
func (r *Rig) ForwardDirection() (x, z float32) {
	f := r.PivotRotation().Mul(r.CameraLocalRotation).Rotate(math.Vec3{Z: 1})
	return f.X, f.Z
}

// RightDirection returns the camera's right direction on the XZ plane.
func (r *Rig) RightDirection() (x, z float32) {
	fx, fz := r.ForwardDirection()
	return fz, -fx
}
