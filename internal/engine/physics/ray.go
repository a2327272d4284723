package physics

import (
	gomath "math"

	"github.com/Faultbox/planeshift/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NewRay creates a ray, normalizing the direction.
func NewRay(origin, direction math.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the entry distance and the outward face normal at the entry point.
// Rays starting inside the box do not hit it.
func (r Ray) IntersectAABB(box AABB) (t float32, normal math.Vec3, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	bmin := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	bmax := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	entryAxis := -1
	var entrySign float32

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
				return 0, math.Vec3{}, false
			}
			continue
		}
		t1 := (bmin[axis] - origin[axis]) / dir[axis]
		t2 := (bmax[axis] - origin[axis]) / dir[axis]
		sign := float32(-1) // entering through the min face
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			entryAxis = axis
			entrySign = sign
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmin < 0 || entryAxis < 0 {
		return 0, math.Vec3{}, false
	}

	switch entryAxis {
	case 0:
		normal.X = entrySign
	case 1:
		normal.Y = entrySign
	case 2:
		normal.Z = entrySign
	}
	return tmin, normal, true
}
