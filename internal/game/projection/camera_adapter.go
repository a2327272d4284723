package projection

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/camera"
	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/pkg/math"
)

// CameraAdapter moves and yaws the camera rig for a switch. It never writes the pivot's
// Y; camera.VerticalFollow owns that axis.
type CameraAdapter struct {
	rig *camera.Rig
	log *zap.Logger
}

// NewCameraAdapter wraps rig. A nil rig gives an adapter whose operations do nothing.
func NewCameraAdapter(rig *camera.Rig, log *zap.Logger) *CameraAdapter {
	if log == nil {
		log = zap.NewNop()
	}
	if rig == nil {
		log.Warn("camera adapter has no pivot; camera will not rotate")
	}
	return &CameraAdapter{rig: rig, log: log}
}

// Enabled reports whether a rig is attached.
func (c *CameraAdapter) Enabled() bool { return c != nil && c.rig != nil }

// Rig returns the attached rig.
func (c *CameraAdapter) Rig() *camera.Rig { return c.rig }

// RepositionPivotToCenter moves the pivot's X and Z to center plus offset. Without a
// center the pivot's own position minus offset is used as the base, which leaves it in
// place.
func (c *CameraAdapter) RepositionPivotToCenter(center *scene.Node, offset math.Vec3) {
	if !c.Enabled() {
		return
	}
	base := c.rig.PivotPosition.Sub(offset)
	if center.Alive() {
		base = center.WorldPosition()
	}
	target := base.Add(offset)
	c.rig.PivotPosition.X = target.X
	c.rig.PivotPosition.Z = target.Z
}

// UpdateRotation sets the pivot yaw to the shortest-arc interpolation between start and
// target at progress.
func (c *CameraAdapter) UpdateRotation(startYaw, targetYaw, progress float32) {
	if !c.Enabled() {
		return
	}
	c.rig.PivotYaw = math.LerpAngle(startYaw, targetYaw, progress)
}

// SetYaw sets the pivot yaw directly.
func (c *CameraAdapter) SetYaw(yaw float32) {
	if !c.Enabled() {
		return
	}
	c.rig.PivotYaw = yaw
}

// Yaw returns the pivot yaw, or 0 without a rig.
func (c *CameraAdapter) Yaw() float32 {
	if !c.Enabled() {
		return 0
	}
	return c.rig.PivotYaw
}

// SetCameraDistance places the child camera at local (0, 0, -|distance|).
func (c *CameraAdapter) SetCameraDistance(distance float32) {
	if !c.Enabled() {
		return
	}
	if !c.rig.PlaceCamera(distance) {
		c.log.Warn("camera pivot has no child camera; distance ignored")
	}
}
