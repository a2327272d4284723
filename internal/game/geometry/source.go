package geometry

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/scene"
	"github.com/Faultbox/planeshift/internal/game/plane"
)

// PlaneSettings configures the seam constants. When a rotation center is set, the
// constants are the center's coordinate plus the offset; otherwise PlaneZ/PlaneX are used
// as given.
type PlaneSettings struct {
	PlaneZOffset float32 `yaml:"plane_z_offset"`
	PlaneXOffset float32 `yaml:"plane_x_offset"`
	PlaneZ       float32 `yaml:"plane_z"`
	PlaneX       float32 `yaml:"plane_x"`
}

// Source owns the terrain root and rebuilds its projection for a given axis.
type Source struct {
	root        *scene.Node
	center      *scene.Node
	settings    PlaneSettings
	transformer *Transformer
	log         *zap.Logger

	planeZ float32
	planeX float32
}

// NewSource creates a geometry source over root. A nil root leaves the source disabled.
func NewSource(root *scene.Node, transformer *Transformer, settings PlaneSettings, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	if root == nil {
		log.Warn("geometry source has no root; projection disabled")
	}
	s := &Source{
		root:        root,
		settings:    settings,
		transformer: transformer,
		log:         log,
	}
	s.recomputePlanes()
	return s
}

// SetRotationCenter sets the node the seam constants are measured from. nil reverts to
// the fixed constants.
func (s *Source) SetRotationCenter(center *scene.Node) {
	s.center = center
	s.recomputePlanes()
}

// RotationCenter returns the configured center, or nil.
func (s *Source) RotationCenter() *scene.Node {
	if !s.center.Alive() {
		return nil
	}
	return s.center
}

// SetSettings replaces the seam configuration. It takes effect on the next rebuild.
func (s *Source) SetSettings(settings PlaneSettings) {
	s.settings = settings
}

// GetPlaneZ returns the current Z seam.
func (s *Source) GetPlaneZ() float32 { return s.planeZ }

// GetPlaneX returns the current X seam.
func (s *Source) GetPlaneX() float32 { return s.planeX }

// Rebuild recomputes the seams and re-projects the terrain onto axis.
func (s *Source) Rebuild(axis plane.Axis) {
	s.recomputePlanes()
	if s.root == nil {
		return
	}
	s.transformer.Transform(axis, Params{
		SourceRoot: s.root,
		PlaneZ:     s.planeZ,
		PlaneX:     s.planeX,
	})
}

// ClearProjected returns the terrain to its original layout.
func (s *Source) ClearProjected() {
	s.transformer.Restore()
}

// Teardown forgets recorded positions without writing them back.
func (s *Source) Teardown() {
	s.transformer.Clear()
}

// Transformer returns the underlying transformer.
func (s *Source) Transformer() *Transformer { return s.transformer }

func (s *Source) recomputePlanes() {
	if c := s.RotationCenter(); c != nil {
		pos := c.WorldPosition()
		s.planeZ = pos.Z + s.settings.PlaneZOffset
		s.planeX = pos.X + s.settings.PlaneXOffset
		return
	}
	s.planeZ = s.settings.PlaneZ
	s.planeX = s.settings.PlaneX
}
