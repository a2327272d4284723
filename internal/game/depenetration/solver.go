// Package depenetration pushes a collider straight up out of the static geometry it
// overlaps.
package depenetration

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/pkg/math"
)

// nearHorizontal is the |normal.y| below which a contact is treated as a wall: dividing
// by it would explode, so the step ceiling is used instead.
const nearHorizontal = 0.05

// Settings tunes the solver.
type Settings struct {
	Iterations       int      `yaml:"iterations"`
	Skin             float32  `yaml:"skin"`
	OverlapInflation float32  `yaml:"overlap_inflation"`
	MaxStep          float32  `yaml:"max_step"`
	MaxTotal         float32  `yaml:"max_total"`
	GroundSkin       float32  `yaml:"ground_skin"`
	GroundLayers     []string `yaml:"ground_layers"`
}

// DefaultSettings returns conservative tuning for a one-unit player.
func DefaultSettings() Settings {
	return Settings{
		Iterations:       4,
		Skin:             0.01,
		OverlapInflation: 0.98,
		MaxStep:          0.5,
		MaxTotal:         3,
		GroundSkin:       0.01,
		GroundLayers:     []string{"ground", "default"},
	}
}

// Solver resolves vertical overlaps against a physics world.
type Solver struct {
	world    physics.World
	settings Settings
	log      *zap.Logger
}

// NewSolver creates a solver over world.
func NewSolver(world physics.World, settings Settings, log *zap.Logger) *Solver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{world: world, settings: settings, log: log}
}

// Settings returns the active tuning.
func (s *Solver) Settings() Settings { return s.settings }

// SetSettings replaces the tuning.
func (s *Solver) SetSettings(settings Settings) { s.settings = settings }

// ResolveVerticalOverlapUpwards lifts transform until collider no longer overlaps
// anything in groundMask, for at most iterations rounds. With conservativeFallback the
// collider is finally snapped on top of the highest remaining overlap. It never moves
// down or sideways and never moves further than MaxTotal. It reports whether anything
// moved.
func (s *Solver) ResolveVerticalOverlapUpwards(collider *physics.Collider, transform *scene.Node, groundMask physics.LayerMask, iterations int, conservativeFallback bool) bool {
	if collider == nil || !transform.Alive() || s.world == nil {
		return false
	}

	cfg := s.settings
	moved := false
	var total float32

	for i := 0; i < iterations; i++ {
		overlaps := s.overlaps(collider, groundMask)
		if len(overlaps) == 0 {
			break
		}

		var required float32
		penetrating := false
		for _, other := range overlaps {
			dir, dist, ok := s.world.ComputePenetration(collider, other)
			if !ok || dist <= 0 {
				continue
			}
			penetrating = true
			required = max(required, verticalStep(dir, dist, cfg))
		}
		if !penetrating {
			break
		}

		remaining := cfg.MaxTotal - total
		if remaining <= 0 {
			break
		}
		step := min(required+cfg.Skin, remaining)
		s.lift(transform, step)
		moved = true
		total += step
	}

	if conservativeFallback {
		if lifted := s.fallback(collider, transform, groundMask, cfg.MaxTotal-total); lifted > 0 {
			moved = true
			total += lifted
		}
	}

	if moved {
		s.log.Debug("resolved vertical overlap",
			zap.String("collider", collider.Name),
			zap.Float32("lifted", total),
			zap.Bool("fallback", conservativeFallback),
		)
	}
	return moved
}

// verticalStep converts a penetration into the upward distance that clears it.
func verticalStep(dir math.Vec3, dist float32, cfg Settings) float32 {
	ay := math.Abs(dir.Y)
	var v float32
	if ay < nearHorizontal {
		v = cfg.MaxStep
	} else {
		v = dist / ay
	}
	return math.Clamp(v, cfg.Skin, cfg.MaxStep)
}

// fallback snaps the collider's bottom to just above the highest overlapping top.
func (s *Solver) fallback(collider *physics.Collider, transform *scene.Node, mask physics.LayerMask, budget float32) float32 {
	if budget <= 0 {
		return 0
	}
	overlaps := s.overlaps(collider, mask)
	if len(overlaps) == 0 {
		return 0
	}

	highest := overlaps[0].Bounds().Max.Y
	for _, o := range overlaps[1:] {
		highest = max(highest, o.Bounds().Max.Y)
	}

	cfg := s.settings
	target := highest + cfg.Skin + cfg.GroundSkin
	bottom := collider.Bounds().Min.Y
	if bottom >= target {
		return 0
	}
	deficit := min(target-bottom, budget)
	s.lift(transform, deficit)
	return deficit
}

func (s *Solver) overlaps(collider *physics.Collider, mask physics.LayerMask) []*physics.Collider {
	b := collider.Bounds()
	inflation := s.settings.OverlapInflation
	if inflation <= 0 {
		inflation = 1
	}
	found := s.world.OverlapBox(b.Center(), b.Extents().Scale(inflation), mask, false)
	out := found[:0]
	for _, c := range found {
		if c != collider {
			out = append(out, c)
		}
	}
	return out
}

func (s *Solver) lift(transform *scene.Node, dy float32) {
	transform.Translate(math.Vec3{Y: dy})
	s.world.SyncTransforms()
}
