// Package geometry re-projects terrain in place onto the active flatten plane.
package geometry

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/pkg/math"
)

// Syncer commits pending transform writes to the physics broad phase.
type Syncer interface {
	SyncTransforms()
}

// Params describes one transform request.
type Params struct {
	SourceRoot *scene.Node
	PlaneZ     float32
	PlaneX     float32
}

// Entry records the world position a mesh node had before it was flattened.
type Entry struct {
	Node     *scene.Node
	Original math.Vec3

	local math.Vec3 // restored verbatim so nested nodes come back bit-exact
}

// Transformer flattens mesh nodes onto a plane and restores them afterwards.
type Transformer struct {
	physics Syncer
	log     *zap.Logger

	entries     []Entry
	recorded    map[scene.Handle]struct{}
	transformed bool
	axis        plane.Axis
}

// NewTransformer creates a transformer. physics may be nil when no colliders need
// syncing.
func NewTransformer(physics Syncer, log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transformer{
		physics:  physics,
		log:      log,
		recorded: make(map[scene.Handle]struct{}),
	}
}

// IsTransformed reports whether terrain is currently flattened.
func (t *Transformer) IsTransformed() bool { return t.transformed }

// CurrentAxis returns the axis of the active transform. Only meaningful while
// IsTransformed is true.
func (t *Transformer) CurrentAxis() plane.Axis { return t.axis }

// Transform pins one coordinate of every mesh node under p.SourceRoot: Z for FlattenZ,
// X for FlattenX. A previous transform is restored first so offsets never compound.
func (t *Transformer) Transform(axis plane.Axis, p Params) {
	if p.SourceRoot == nil {
		t.log.Warn("transform skipped: no source root")
		return
	}
	if t.transformed {
		t.Restore()
	}

	// Capture every original before moving anything so nested meshes record their
	// true world positions.
	t.entries = t.entries[:0]
	clear(t.recorded)
	for _, n := range p.SourceRoot.MeshNodes() {
		if _, ok := t.recorded[n.Handle()]; ok {
			continue
		}
		t.recorded[n.Handle()] = struct{}{}
		t.entries = append(t.entries, Entry{Node: n, Original: n.WorldPosition(), local: n.LocalPosition()})
	}

	for _, e := range t.entries {
		pos := e.Original
		if axis == plane.FlattenZ {
			pos.Z = p.PlaneZ
		} else {
			pos.X = p.PlaneX
		}
		e.Node.SetWorldPosition(pos)
	}

	t.transformed = true
	t.axis = axis
	t.sync()
	t.log.Debug("geometry transformed",
		zap.Stringer("axis", axis),
		zap.Int("objects", len(t.entries)),
		zap.Float32("plane_z", p.PlaneZ),
		zap.Float32("plane_x", p.PlaneX),
	)
}

// Restore writes every recorded position back. Destroyed nodes are skipped.
func (t *Transformer) Restore() {
	if !t.transformed {
		return
	}
	for _, e := range t.entries {
		if !e.Node.Alive() {
			continue
		}
		e.Node.SetLocalPosition(e.local)
	}
	t.transformed = false
	t.sync()
}

// Clear drops all recorded entries without moving anything.
func (t *Transformer) Clear() {
	t.entries = nil
	clear(t.recorded)
	t.transformed = false
}

func (t *Transformer) sync() {
	if t.physics != nil {
		t.physics.SyncTransforms()
	}
}
