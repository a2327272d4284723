package physics

import "fmt"

// Layer is a single collision layer index.
type Layer uint8

// LayerMask is a bit set of layers.
type LayerMask uint32

// Built-in layers.
const (
	LayerDefault Layer = iota
	LayerGround
	LayerPlayer
	LayerTrigger
)

// AllLayers matches every layer.
const AllLayers LayerMask = ^LayerMask(0)

var layerNames = map[string]Layer{
	"default": LayerDefault,
	"ground":  LayerGround,
	"player":  LayerPlayer,
	"trigger": LayerTrigger,
}

// Mask returns the mask containing only l.
func (l Layer) Mask() LayerMask { return 1 << LayerMask(l) }

// Has reports whether the mask contains l.
func (m LayerMask) Has(l Layer) bool { return m&l.Mask() != 0 }

// LayerByName resolves a layer name.
func LayerByName(name string) (Layer, error) {
	l, ok := layerNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown layer %q", name)
	}
	return l, nil
}

// MaskFromNames builds a mask from layer names. An empty list means all layers.
func MaskFromNames(names []string) (LayerMask, error) {
	if len(names) == 0 {
		return AllLayers, nil
	}
	var m LayerMask
	for _, n := range names {
		l, err := LayerByName(n)
		if err != nil {
			return 0, err
		}
		m |= l.Mask()
	}
	return m, nil
}
