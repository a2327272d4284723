package physics

import (
	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/pkg/math"
)

// Constraints freezes body axes.
type Constraints uint8

const (
	FreezePositionX Constraints = 1 << iota
	FreezePositionY
	FreezePositionZ
	FreezeRotationX
	FreezeRotationY
	FreezeRotationZ

	FreezeRotation = FreezeRotationX | FreezeRotationY | FreezeRotationZ
)

// Has reports whether all bits of flag are set.
func (c Constraints) Has(flag Constraints) bool { return c&flag == flag }

// Body is a rigid body driven by its owner. Non-kinematic bodies are integrated and
// collided by BoxWorld.Step; kinematic bodies are only moved by direct writes.
type Body struct {
	Node            *scene.Node
	Collider        *Collider
	Velocity        math.Vec3
	AngularVelocity math.Vec3
	Kinematic       bool
	Constraints     Constraints
	CollisionMask   LayerMask
}

// NewBody creates a dynamic body for node with the given collider.
func NewBody(node *scene.Node, collider *Collider) *Body {
	return &Body{
		Node:          node,
		Collider:      collider,
		CollisionMask: AllLayers,
	}
}

// Position returns the body's world position.
func (b *Body) Position() math.Vec3 { return b.Node.WorldPosition() }

// SetPosition teleports the body. Callers that query the world afterwards in the same
// frame must call SyncTransforms first.
func (b *Body) SetPosition(p math.Vec3) { b.Node.SetWorldPosition(p) }
