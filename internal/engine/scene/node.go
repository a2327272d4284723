// Package scene provides the transform hierarchy shared by terrain, the player and
// the rotation center.
package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/planeshift/pkg/math"
)

// Handle identifies a node for its whole lifetime.
type Handle = uuid.UUID

// Node is a translation-only transform in a parent/child hierarchy.
// Terrain objects carry HasMesh; only those are re-projected by the geometry transformer.
type Node struct {
	Name    string
	HasMesh bool

	handle   Handle
	local    math.Vec3
	parent   *Node
	children []*Node
	alive    bool
}

// NewNode creates a live node at the given local position.
func NewNode(name string, local math.Vec3) *Node {
	return &Node{
		Name:   name,
		handle: uuid.New(),
		local:  local,
		alive:  true,
	}
}

// NewMeshNode creates a live node that carries a renderable mesh.
func NewMeshNode(name string, local math.Vec3) *Node {
	n := NewNode(name, local)
	n.HasMesh = true
	return n
}

// Handle returns the node's identity.
func (n *Node) Handle() Handle { return n.handle }

// Alive reports whether the node has not been destroyed.
// A nil node is never alive.
func (n *Node) Alive() bool { return n != nil && n.alive }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children.
func (n *Node) Children() []*Node { return n.children }

// AddChild attaches child under n, keeping the child's world position.
func (n *Node) AddChild(child *Node) {
	world := child.WorldPosition()
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.SetWorldPosition(world)
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// LocalPosition returns the position relative to the parent.
func (n *Node) LocalPosition() math.Vec3 { return n.local }

// SetLocalPosition sets the position relative to the parent.
func (n *Node) SetLocalPosition(p math.Vec3) { n.local = p }

// WorldPosition returns the position in world space.
func (n *Node) WorldPosition() math.Vec3 {
	if n.parent == nil {
		return n.local
	}
	return n.parent.WorldPosition().Add(n.local)
}

// SetWorldPosition moves the node so that its world position equals p.
func (n *Node) SetWorldPosition(p math.Vec3) {
	if n.parent == nil {
		n.local = p
		return
	}
	n.local = p.Sub(n.parent.WorldPosition())
}

// Translate moves the node by delta in world space.
func (n *Node) Translate(delta math.Vec3) {
	n.local = n.local.Add(delta)
}

// Destroy marks the node and all of its descendants as dead and detaches it.
func (n *Node) Destroy() {
	if !n.Alive() {
		return
	}
	n.Walk(func(d *Node) bool {
		d.alive = false
		return true
	})
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
}

// Walk visits n and its descendants in pre-order. Returning false from fn skips the
// visited node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// MeshNodes returns every live mesh-bearing node under n (n included), parents first.
func (n *Node) MeshNodes() []*Node {
	var out []*Node
	n.Walk(func(d *Node) bool {
		if !d.alive {
			return false
		}
		if d.HasMesh {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(d *Node) bool {
		if found != nil {
			return false
		}
		if d.Name == name {
			found = d
			return false
		}
		return true
	})
	return found
}
