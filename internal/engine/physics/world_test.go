package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/pkg/math"
)

func box(w *BoxWorld, name string, pos, size math.Vec3) *Collider {
	c := NewBoxCollider(scene.NewMeshNode(name, pos), size, LayerGround)
	w.AddCollider(c)
	return c
}

func TestOverlapBoxUsesSyncedBounds(t *testing.T) {
	w := NewBoxWorld()
	ground := box(w, "ground", math.Vec3{}, math.Vec3{X: 10, Y: 1, Z: 10})

	hits := w.OverlapBox(math.Vec3{Y: 0.4}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, AllLayers, false)
	require.Len(t, hits, 1)

	// Moving the node is invisible to the broad phase until synced.
	ground.Node.SetWorldPosition(math.Vec3{Y: 50})
	assert.Len(t, w.OverlapBox(math.Vec3{Y: 0.4}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, AllLayers, false), 1)

	w.SyncTransforms()
	assert.Empty(t, w.OverlapBox(math.Vec3{Y: 0.4}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, AllLayers, false))
}

func TestOverlapBoxFiltersMaskAndTriggers(t *testing.T) {
	w := NewBoxWorld()
	box(w, "ground", math.Vec3{}, math.Vec3{X: 2, Y: 2, Z: 2})
	trig := box(w, "trigger", math.Vec3{}, math.Vec3{X: 2, Y: 2, Z: 2})
	trig.Trigger = true

	half := math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	assert.Len(t, w.OverlapBox(math.Vec3{}, half, AllLayers, false), 1)
	assert.Len(t, w.OverlapBox(math.Vec3{}, half, AllLayers, true), 2)
	assert.Empty(t, w.OverlapBox(math.Vec3{}, half, LayerPlayer.Mask(), true))
}

func TestComputePenetrationMinimumAxis(t *testing.T) {
	w := NewBoxWorld()
	ground := box(w, "ground", math.Vec3{}, math.Vec3{X: 10, Y: 1, Z: 10})
	player := NewBoxCollider(scene.NewNode("player", math.Vec3{Y: 0.9}), math.Vec3{X: 1, Y: 1, Z: 1}, LayerPlayer)
	w.AddCollider(player)

	dir, dist, ok := w.ComputePenetration(player, ground)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{Y: 1}, dir)
	assert.InDelta(t, 0.1, dist, 1e-5)

	player.Node.SetWorldPosition(math.Vec3{Y: 5})
	_, _, ok = w.ComputePenetration(player, ground)
	assert.False(t, ok, "separated boxes report no penetration")
}

func TestRaycastHitsTopFace(t *testing.T) {
	w := NewBoxWorld()
	box(w, "low", math.Vec3{}, math.Vec3{X: 4, Y: 1, Z: 4})
	box(w, "high", math.Vec3{Y: 2}, math.Vec3{X: 4, Y: 1, Z: 4})

	hit, ok := w.Raycast(math.Vec3{Y: 10}, math.Vec3{Y: -1}, 20, AllLayers)
	require.True(t, ok)
	assert.Equal(t, "high", hit.Collider.Name)
	assert.InDelta(t, 7.5, hit.Distance, 1e-5)
	assert.Equal(t, math.Vec3{Y: 1}, hit.Normal)

	_, ok = w.Raycast(math.Vec3{Y: 10}, math.Vec3{Y: -1}, 5, AllLayers)
	assert.False(t, ok, "hit beyond max distance")
}

func TestStepLandsOnGround(t *testing.T) {
	w := NewBoxWorld()
	box(w, "ground", math.Vec3{}, math.Vec3{X: 10, Y: 1, Z: 10})
	node := scene.NewNode("player", math.Vec3{Y: 1.2})
	body := NewBody(node, NewBoxCollider(node, math.Vec3{X: 1, Y: 1, Z: 1}, LayerPlayer))
	w.AddBody(body)

	body.Velocity = math.Vec3{X: 1, Y: -10}
	w.Step(0.1)

	assert.InDelta(t, 1.0, node.WorldPosition().Y, 1e-5, "rests on the top face")
	assert.InDelta(t, 0.1, node.WorldPosition().X, 1e-5)
	assert.Zero(t, body.Velocity.Y)
	assert.Equal(t, float32(1), body.Velocity.X)
}

func TestStepHonorsKinematicAndFrozenAxes(t *testing.T) {
	w := NewBoxWorld()
	node := scene.NewNode("player", math.Vec3{})
	body := NewBody(node, nil)
	w.AddBody(body)

	body.Velocity = math.Vec3{X: 1, Y: 1, Z: 1}
	body.Constraints = FreezePositionZ
	w.Step(1)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 0}, node.WorldPosition())

	body.Kinematic = true
	w.Step(1)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 0}, node.WorldPosition())
}
