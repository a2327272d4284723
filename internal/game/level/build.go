package level

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/pkg/math"
)

// Registry receives the physics objects of a built level.
type Registry interface {
	AddCollider(c *physics.Collider)
	AddBody(b *physics.Body)
}

// Scene is a built level.
type Scene struct {
	Root    *scene.Node
	Terrain *scene.Node // parent of every terrain object
	Center  *scene.Node // rotation center, nil when the level has none
	Player  *physics.Body

	colliders map[string]*physics.Collider
}

// Collider returns the collider of the named terrain object.
func (s *Scene) Collider(name string) *physics.Collider {
	return s.colliders[name]
}

// Build creates the scene graph for l and registers its colliders and the player body
// with reg. The level must have passed Validate.
func (l *Level) Build(reg Registry, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}

	root := scene.NewNode(l.Name, math.Vec3{})
	s := &Scene{
		Root:      root,
		Terrain:   scene.NewNode("terrain", math.Vec3{}),
		colliders: make(map[string]*physics.Collider, len(l.Terrain)),
	}
	root.AddChild(s.Terrain)

	for _, o := range l.Terrain {
		var n *scene.Node
		if o.HasMesh() {
			n = scene.NewMeshNode(o.Name, o.Position)
		} else {
			n = scene.NewNode(o.Name, o.Position)
		}
		s.Terrain.AddChild(n)

		layer, _ := o.layer()
		c := physics.NewBoxCollider(n, o.Size, layer)
		c.Trigger = layer == physics.LayerTrigger
		reg.AddCollider(c)
		s.colliders[o.Name] = c
	}

	if l.RotationCenter != nil {
		s.Center = scene.NewNode("rotation_center", *l.RotationCenter)
		root.AddChild(s.Center)
	}

	if l.Player != nil {
		node := scene.NewNode("player", l.Player.Spawn)
		root.AddChild(node)
		body := physics.NewBody(node, physics.NewBoxCollider(node, l.Player.Size, physics.LayerPlayer))
		body.CollisionMask = physics.LayerGround.Mask() | physics.LayerDefault.Mask()
		reg.AddBody(body)
		s.Player = body
	}

	log.Info("level built",
		zap.String("level", l.Name),
		zap.Int("terrain", len(l.Terrain)),
		zap.Bool("rotation_center", s.Center != nil),
	)
	return s
}
