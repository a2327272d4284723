package physics

import (
	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/pkg/math"
)

// Collider is a box attached to a scene node.
type Collider struct {
	Name        string
	Node        *scene.Node
	Offset      math.Vec3 // center offset from the node position
	HalfExtents math.Vec3
	Layer       Layer
	Trigger     bool

	synced AABB // broad-phase bounds as of the last SyncTransforms
	world  *BoxWorld
}

// NewBoxCollider creates a solid box collider of the given full size.
func NewBoxCollider(node *scene.Node, size math.Vec3, layer Layer) *Collider {
	name := ""
	if node != nil {
		name = node.Name
	}
	return &Collider{
		Name:        name,
		Node:        node,
		HalfExtents: size.Abs().Scale(0.5),
		Layer:       layer,
	}
}

// Bounds returns the world-space box at the node's current position.
func (c *Collider) Bounds() AABB {
	if c == nil || c.Node == nil {
		return AABB{}
	}
	return AABBFromCenter(c.Node.WorldPosition().Add(c.Offset), c.HalfExtents)
}

// Enabled reports whether the collider takes part in queries.
func (c *Collider) Enabled() bool {
	return c != nil && c.Node.Alive()
}
