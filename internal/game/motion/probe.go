package motion

import (
	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/pkg/math"
)

// GroundInfo is the result of a ground probe.
type GroundInfo struct {
	Grounded bool
	Distance float32 // gap between the collider bottom and the ground
	Normal   math.Vec3
	Collider *physics.Collider
}

// GroundProbe casts short rays down from the bottom of a collider.
type GroundProbe struct {
	World    physics.World
	Mask     physics.LayerMask
	Distance float32
	Skin     float32
}

// Check probes below bounds. Three rays are cast: the bottom center and both edges along
// the active plane. A body moving upward is never grounded.
func (p GroundProbe) Check(bounds physics.AABB, active plane.Plane, verticalVelocity float32) GroundInfo {
	if p.World == nil || verticalVelocity > 0 {
		return GroundInfo{}
	}

	center := bounds.Center()
	ext := bounds.Extents()
	inset := p.Skin * 2

	origins := [3]math.Vec3{center}
	if active == plane.X {
		origins[1] = center.WithX(center.X - ext.X + inset)
		origins[2] = center.WithX(center.X + ext.X - inset)
	} else {
		origins[1] = center.WithZ(center.Z - ext.Z + inset)
		origins[2] = center.WithZ(center.Z + ext.Z - inset)
	}

	// Rays start a skin above the bottom so resting contact still registers.
	startY := bounds.Min.Y + p.Skin
	reach := p.Skin + p.Distance

	best := GroundInfo{}
	for _, o := range origins {
		hit, ok := p.World.Raycast(o.WithY(startY), math.Vec3{Y: -1}, reach, p.Mask)
		if !ok {
			continue
		}
		gap := hit.Distance - p.Skin
		if !best.Grounded || gap < best.Distance {
			best = GroundInfo{Grounded: true, Distance: gap, Normal: hit.Normal, Collider: hit.Collider}
		}
	}
	return best
}
