package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/pkg/math"
)

type countingSyncer struct{ calls int }

func (c *countingSyncer) SyncTransforms() { c.calls++ }

func terrain() (*scene.Node, []*scene.Node) {
	root := scene.NewNode("terrain", math.Vec3{X: 0.3, Y: 0.7, Z: -1.1})
	a := scene.NewMeshNode("a", math.Vec3{X: 1.25, Y: 0, Z: 3.5})
	b := scene.NewMeshNode("b", math.Vec3{X: -4.1, Y: 2, Z: -7.3})
	nested := scene.NewMeshNode("b.top", math.Vec3{X: -4.1, Y: 3.3, Z: -6.9})
	marker := scene.NewNode("marker", math.Vec3{X: 9, Y: 9, Z: 9})
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(marker)
	b.AddChild(nested)
	return root, []*scene.Node{a, b, nested}
}

func worldPositions(nodes []*scene.Node) []math.Vec3 {
	out := make([]math.Vec3, len(nodes))
	for i, n := range nodes {
		out[i] = n.WorldPosition()
	}
	return out
}

func TestTransformPinsOneCoordinate(t *testing.T) {
	root, meshes := terrain()
	before := worldPositions(meshes)
	markerBefore := root.Find("marker").WorldPosition()
	syncer := &countingSyncer{}
	tr := NewTransformer(syncer, nil)

	tr.Transform(plane.FlattenZ, Params{SourceRoot: root, PlaneZ: 2, PlaneX: 8})
	require.True(t, tr.IsTransformed())
	assert.Equal(t, 1, syncer.calls, "physics synced after moving terrain")
	for i, n := range meshes {
		got := n.WorldPosition()
		assert.InDelta(t, 2, got.Z, 1e-5)
		assert.InDelta(t, before[i].X, got.X, 1e-5)
		assert.InDelta(t, before[i].Y, got.Y, 1e-5)
	}
	assert.Equal(t, markerBefore, root.Find("marker").WorldPosition(), "mesh-less nodes untouched")

	tr.Transform(plane.FlattenX, Params{SourceRoot: root, PlaneZ: 2, PlaneX: 8})
	for i, n := range meshes {
		got := n.WorldPosition()
		assert.InDelta(t, 8, got.X, 1e-5)
		assert.InDelta(t, before[i].Z, got.Z, 1e-5, "previous flatten was restored first")
	}
}

func TestTransformTwiceIsIdempotent(t *testing.T) {
	root, meshes := terrain()
	tr := NewTransformer(nil, nil)
	p := Params{SourceRoot: root, PlaneZ: -3, PlaneX: 5}

	tr.Transform(plane.FlattenX, p)
	once := worldPositions(meshes)
	tr.Transform(plane.FlattenX, p)
	assert.Equal(t, once, worldPositions(meshes))
	assert.Len(t, tr.entries, 3)
}

func TestRestoreIsExact(t *testing.T) {
	root, meshes := terrain()
	before := worldPositions(meshes)
	tr := NewTransformer(nil, nil)

	tr.Transform(plane.FlattenZ, Params{SourceRoot: root, PlaneZ: 123.456})
	tr.Restore()

	assert.False(t, tr.IsTransformed())
	assert.Equal(t, before, worldPositions(meshes))

	tr.Restore() // no-op when not transformed
	assert.Equal(t, before, worldPositions(meshes))
}

func TestRestoreSkipsDestroyedNodes(t *testing.T) {
	root, meshes := terrain()
	tr := NewTransformer(nil, nil)
	tr.Transform(plane.FlattenZ, Params{SourceRoot: root, PlaneZ: 0})

	meshes[1].Destroy()
	assert.NotPanics(t, tr.Restore)
	assert.False(t, tr.IsTransformed())
	assert.InDelta(t, 3.5, meshes[0].WorldPosition().Z, 1e-5)
}

func TestClearDropsEntriesWithoutMoving(t *testing.T) {
	root, meshes := terrain()
	tr := NewTransformer(nil, nil)
	tr.Transform(plane.FlattenZ, Params{SourceRoot: root, PlaneZ: 0})
	flattened := worldPositions(meshes)

	tr.Clear()
	assert.False(t, tr.IsTransformed())
	assert.Empty(t, tr.entries)
	assert.Equal(t, flattened, worldPositions(meshes))
}

func TestTransformNilRootIsNoop(t *testing.T) {
	tr := NewTransformer(nil, nil)
	tr.Transform(plane.FlattenZ, Params{})
	assert.False(t, tr.IsTransformed())
}

func TestSourcePlanesFollowRotationCenter(t *testing.T) {
	root, _ := terrain()
	center := scene.NewNode("center", math.Vec3{X: 1, Y: 0, Z: 2})
	src := NewSource(root, NewTransformer(nil, nil), PlaneSettings{PlaneZOffset: -1, PlaneXOffset: 7, PlaneZ: 50, PlaneX: 60}, nil)

	assert.Equal(t, float32(50), src.GetPlaneZ())
	assert.Equal(t, float32(60), src.GetPlaneX())

	src.SetRotationCenter(center)
	assert.Equal(t, float32(1), src.GetPlaneZ())
	assert.Equal(t, float32(8), src.GetPlaneX())

	center.SetWorldPosition(math.Vec3{X: 3, Z: 0})
	src.Rebuild(plane.FlattenX)
	assert.Equal(t, float32(10), src.GetPlaneX(), "seams are recomputed on rebuild")
	assert.Equal(t, plane.FlattenX, src.Transformer().CurrentAxis())

	src.ClearProjected()
	assert.False(t, src.Transformer().IsTransformed())
}

func TestSourceWithoutRootIsDisabled(t *testing.T) {
	src := NewSource(nil, NewTransformer(nil, nil), PlaneSettings{PlaneZ: 1}, nil)
	assert.NotPanics(t, func() { src.Rebuild(plane.FlattenZ) })
	assert.False(t, src.Transformer().IsTransformed())
}
