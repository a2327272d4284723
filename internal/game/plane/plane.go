// Package plane defines the two projection axes and the movement planes they induce.
package plane

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Axis is the world axis whose coordinate is pinned for all terrain under a view.
type Axis int

const (
	// FlattenZ pins world Z to the plane-Z constant; the player runs along X.
	FlattenZ Axis = iota
	// FlattenX pins world X to the plane-X constant; the player runs along Z.
	FlattenX
)

func (a Axis) String() string {
	switch a {
	case FlattenZ:
		return "flatten_z"
	case FlattenX:
		return "flatten_x"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Valid reports whether a is one of the two supported axes.
func (a Axis) Valid() bool { return a == FlattenZ || a == FlattenX }

// Other returns the orthogonal axis.
func (a Axis) Other() Axis {
	if a == FlattenZ {
		return FlattenX
	}
	return FlattenZ
}

// MovementPlane returns the plane the player moves on while terrain is flattened on a.
func (a Axis) MovementPlane() Plane {
	if a == FlattenX {
		return Z
	}
	return X
}

// ParseAxis parses the YAML/CLI name of an axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "flatten_z", "z":
		return FlattenZ, nil
	case "flatten_x", "x":
		return FlattenX, nil
	}
	return 0, fmt.Errorf("unknown projection axis %q", s)
}

// MarshalYAML implements yaml.Marshaler.
func (a Axis) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Axis) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAxis(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Plane is the world axis the player moves along.
type Plane int

const (
	// X moves the player along world X; Z is locked.
	X Plane = iota
	// Z moves the player along world Z; X is locked.
	Z
)

func (p Plane) String() string {
	if p == Z {
		return "Z"
	}
	return "X"
}

// Locked returns the plane whose coordinate is pinned while moving on p.
func (p Plane) Locked() Plane {
	if p == X {
		return Z
	}
	return X
}
