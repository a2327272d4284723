package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/planeshift/pkg/math"
)

func TestWorldPositionFollowsParent(t *testing.T) {
	root := NewNode("root", math.Vec3{X: 10, Y: 0, Z: 0})
	child := NewMeshNode("child", math.Vec3{X: 1, Y: 2, Z: 3})
	root.AddChild(child)

	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, child.WorldPosition(), "AddChild keeps world position")

	root.Translate(math.Vec3{X: 5})
	assert.Equal(t, math.Vec3{X: 6, Y: 2, Z: 3}, child.WorldPosition())

	child.SetWorldPosition(math.Vec3{X: 0, Y: 0, Z: 0})
	assert.Equal(t, math.Vec3{X: -15, Y: 0, Z: 0}, child.LocalPosition())
}

func TestMeshNodesSkipsDeadSubtrees(t *testing.T) {
	root := NewNode("terrain", math.Vec3{})
	a := NewMeshNode("a", math.Vec3{})
	b := NewMeshNode("b", math.Vec3{})
	bChild := NewMeshNode("b.child", math.Vec3{})
	plain := NewNode("empty", math.Vec3{})
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(plain)
	b.AddChild(bChild)

	require.Len(t, root.MeshNodes(), 3)
	assert.Equal(t, []*Node{a, b, bChild}, root.MeshNodes(), "pre-order, parents first")

	b.Destroy()
	assert.False(t, b.Alive())
	assert.False(t, bChild.Alive())
	assert.Equal(t, []*Node{a}, root.MeshNodes())
}

func TestFindAndHandles(t *testing.T) {
	root := NewNode("root", math.Vec3{})
	center := NewNode("center", math.Vec3{Y: 1})
	root.AddChild(center)

	assert.Same(t, center, root.Find("center"))
	assert.Nil(t, root.Find("missing"))
	assert.NotEqual(t, root.Handle(), center.Handle())

	var nilNode *Node
	assert.False(t, nilNode.Alive())
}
