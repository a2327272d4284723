// Package level loads level files and builds their scene and physics objects.
package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/pkg/math"
)

//go:embed default.yaml
var defaultLevel []byte

// ErrNoPlayer is returned for levels without a usable player section.
var ErrNoPlayer = errors.New("level has no player")

// Level is the on-disk level description.
type Level struct {
	Name           string     `yaml:"name"`
	Player         *Player    `yaml:"player"`
	RotationCenter *math.Vec3 `yaml:"rotation_center"`
	Terrain        []Object   `yaml:"terrain"`
}

// Player describes the player spawn.
type Player struct {
	Spawn math.Vec3 `yaml:"spawn"`
	Size  math.Vec3 `yaml:"size"`
}

// Object is one terrain box. Objects are meshes unless Mesh is set to false; only
// meshes are re-projected by a perspective switch.
type Object struct {
	Name     string    `yaml:"name"`
	Position math.Vec3 `yaml:"position"`
	Size     math.Vec3 `yaml:"size"`
	Mesh     *bool     `yaml:"mesh"`
	Layer    string    `yaml:"layer"`
}

// HasMesh reports whether the object is re-projected.
func (o Object) HasMesh() bool {
	return o.Mesh == nil || *o.Mesh
}

// Parse decodes and checks a level.
func Parse(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decoding level: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Load reads a level file. An empty path returns the built-in level.
func Load(path string) (*Level, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return l, nil
}

// Default returns the built-in level.
func Default() (*Level, error) {
	return Parse(defaultLevel)
}

// Validate checks the player section and every terrain object.
func (l *Level) Validate() error {
	var errs []error
	if l.Player == nil {
		errs = append(errs, ErrNoPlayer)
	} else if !positive(l.Player.Size) {
		errs = append(errs, fmt.Errorf("%w: player size %v must be positive", ErrNoPlayer, l.Player.Size))
	}

	seen := make(map[string]bool, len(l.Terrain))
	for i, o := range l.Terrain {
		if o.Name == "" {
			errs = append(errs, fmt.Errorf("terrain[%d] has no name", i))
		} else if seen[o.Name] {
			errs = append(errs, fmt.Errorf("terrain name %q is not unique", o.Name))
		}
		seen[o.Name] = true
		if !positive(o.Size) {
			errs = append(errs, fmt.Errorf("terrain %q size %v must be positive", o.Name, o.Size))
		}
		if _, err := o.layer(); err != nil {
			errs = append(errs, fmt.Errorf("terrain %q: %w", o.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (o Object) layer() (physics.Layer, error) {
	if o.Layer == "" {
		return physics.LayerDefault, nil
	}
	return physics.LayerByName(o.Layer)
}

func positive(v math.Vec3) bool {
	return v.X > 0 && v.Y > 0 && v.Z > 0
}
