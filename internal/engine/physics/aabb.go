// Package physics is the collision backend the projection core talks to: box colliders,
// rigid bodies, overlap and penetration queries, and raycasts.
package physics

import (
	"github.com/Faultbox/planeshift/pkg/math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners, handling swapped components.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// AABBFromCenter creates an AABB from its center and half extents.
func AABBFromCenter(center, halfExtents math.Vec3) AABB {
	h := halfExtents.Abs()
	return AABB{Min: center.Sub(h), Max: center.Add(h)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extents returns the half size of the box.
func (b AABB) Extents() math.Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Intersects reports whether the boxes overlap with positive volume.
// Touching faces do not count as an overlap.
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X < other.Max.X && b.Max.X > other.Min.X &&
		b.Min.Y < other.Max.Y && b.Max.Y > other.Min.Y &&
		b.Min.Z < other.Max.Z && b.Max.Z > other.Min.Z
}

// Overlap returns the per-axis overlap depth. Non-positive components mean the boxes
// are separated on that axis.
func (b AABB) Overlap(other AABB) math.Vec3 {
	return math.Vec3{
		X: min(b.Max.X, other.Max.X) - max(b.Min.X, other.Min.X),
		Y: min(b.Max.Y, other.Max.Y) - max(b.Min.Y, other.Min.Y),
		Z: min(b.Max.Z, other.Max.Z) - max(b.Min.Z, other.Min.Z),
	}
}

// Translate returns the box moved by delta.
func (b AABB) Translate(delta math.Vec3) AABB {
	return AABB{Min: b.Min.Add(delta), Max: b.Max.Add(delta)}
}
