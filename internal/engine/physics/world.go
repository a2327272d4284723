package physics

import (
	"github.com/Faultbox/planeshift/pkg/math"
)

// World is the physics engine surface the gameplay core depends on.
type World interface {
	// OverlapBox returns the enabled colliders whose broad-phase bounds overlap the box.
	OverlapBox(center, halfExtents math.Vec3, mask LayerMask, includeTriggers bool) []*Collider
	// ComputePenetration returns the minimum translation that separates a from b,
	// evaluated at the colliders' current poses. dir points away from b.
	ComputePenetration(a, b *Collider) (dir math.Vec3, dist float32, ok bool)
	// SyncTransforms pushes pending transform writes into the broad phase.
	SyncTransforms()
	// Raycast returns the closest solid collider hit within maxDist.
	Raycast(origin, dir math.Vec3, maxDist float32, mask LayerMask) (Hit, bool)
}

// Hit describes a raycast result.
type Hit struct {
	Collider *Collider
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
}

// BoxWorld is an in-process World over axis-aligned box colliders.
// Overlap and raycast queries read bounds cached at the last SyncTransforms.
type BoxWorld struct {
	colliders []*Collider
	bodies    []*Body
}

// NewBoxWorld creates an empty world.
func NewBoxWorld() *BoxWorld {
	return &BoxWorld{}
}

// AddCollider registers a collider and syncs its bounds.
func (w *BoxWorld) AddCollider(c *Collider) {
	c.world = w
	c.synced = c.Bounds()
	w.colliders = append(w.colliders, c)
}

// AddBody registers a body and its collider.
func (w *BoxWorld) AddBody(b *Body) {
	if b.Collider != nil && b.Collider.world != w {
		w.AddCollider(b.Collider)
	}
	w.bodies = append(w.bodies, b)
}

// Colliders returns every registered collider.
func (w *BoxWorld) Colliders() []*Collider { return w.colliders }

// SyncTransforms refreshes the cached bounds of all colliders and drops dead ones.
func (w *BoxWorld) SyncTransforms() {
	live := w.colliders[:0]
	for _, c := range w.colliders {
		if !c.Enabled() {
			continue
		}
		c.synced = c.Bounds()
		live = append(live, c)
	}
	for i := len(live); i < len(w.colliders); i++ {
		w.colliders[i] = nil
	}
	w.colliders = live
}

// OverlapBox implements World.
func (w *BoxWorld) OverlapBox(center, halfExtents math.Vec3, mask LayerMask, includeTriggers bool) []*Collider {
	query := AABBFromCenter(center, halfExtents)
	var out []*Collider
	for _, c := range w.colliders {
		if !c.Enabled() || !mask.Has(c.Layer) {
			continue
		}
		if c.Trigger && !includeTriggers {
			continue
		}
		if c.synced.Intersects(query) {
			out = append(out, c)
		}
	}
	return out
}

// ComputePenetration implements World.
func (w *BoxWorld) ComputePenetration(a, b *Collider) (math.Vec3, float32, bool) {
	if !a.Enabled() || !b.Enabled() || a == b {
		return math.Vec3{}, 0, false
	}
	ba, bb := a.Bounds(), b.Bounds()
	o := ba.Overlap(bb)
	if o.X <= 0 || o.Y <= 0 || o.Z <= 0 {
		return math.Vec3{}, 0, false
	}

	delta := ba.Center().Sub(bb.Center())
	dir := math.Vec3{}
	dist := o.X
	dir.X = signOrPositive(delta.X)
	if o.Y < dist {
		dist = o.Y
		dir = math.Vec3{Y: signOrPositive(delta.Y)}
	}
	if o.Z < dist {
		dist = o.Z
		dir = math.Vec3{Z: signOrPositive(delta.Z)}
	}
	return dir, dist, true
}

func signOrPositive(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

// Raycast implements World. Triggers are ignored.
func (w *BoxWorld) Raycast(origin, dir math.Vec3, maxDist float32, mask LayerMask) (Hit, bool) {
	ray := NewRay(origin, dir)
	var best Hit
	found := false
	for _, c := range w.colliders {
		if !c.Enabled() || c.Trigger || !mask.Has(c.Layer) {
			continue
		}
		t, normal, ok := ray.IntersectAABB(c.synced)
		if !ok || t > maxDist {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Collider: c, Point: ray.At(t), Normal: normal, Distance: t}
			found = true
		}
	}
	return best, found
}

// Step integrates every dynamic body by dt, resolving contacts against the other
// solid colliders one axis at a time (Y, then X, then Z).
func (w *BoxWorld) Step(dt float32) {
	for _, b := range w.bodies {
		if b.Kinematic || !b.Node.Alive() {
			continue
		}
		w.moveAxis(b, 1, b.Velocity.Y*dt, FreezePositionY)
		w.moveAxis(b, 0, b.Velocity.X*dt, FreezePositionX)
		w.moveAxis(b, 2, b.Velocity.Z*dt, FreezePositionZ)
		if b.Collider != nil {
			b.Collider.synced = b.Collider.Bounds()
		}
	}
}

func (w *BoxWorld) moveAxis(b *Body, axis int, delta float32, freeze Constraints) {
	if delta == 0 || b.Constraints.Has(freeze) {
		return
	}
	var before AABB
	if b.Collider != nil {
		before = b.Collider.Bounds()
	}
	var move math.Vec3
	setAxis(&move, axis, delta)
	b.Node.Translate(move)

	if b.Collider == nil {
		return
	}
	bounds := b.Collider.Bounds()
	for _, c := range w.colliders {
		if c == b.Collider || !c.Enabled() || c.Trigger || !b.CollisionMask.Has(c.Layer) {
			continue
		}
		// Pre-existing overlaps are left to depenetration.
		if !bounds.Intersects(c.synced) || before.Intersects(c.synced) {
			continue
		}
		// Push back to the contact face and stop on this axis.
		var push float32
		if delta > 0 {
			push = axisOf(c.synced.Min, axis) - axisOf(bounds.Max, axis)
		} else {
			push = axisOf(c.synced.Max, axis) - axisOf(bounds.Min, axis)
		}
		var back math.Vec3
		setAxis(&back, axis, push)
		b.Node.Translate(back)
		bounds = bounds.Translate(back)
		setAxis(&b.Velocity, axis, 0)
	}
}

func axisOf(v math.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func setAxis(v *math.Vec3, axis int, value float32) {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}
