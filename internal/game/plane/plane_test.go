package plane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAxisMovementPlane(t *testing.T) {
	assert.Equal(t, X, FlattenZ.MovementPlane())
	assert.Equal(t, Z, FlattenX.MovementPlane())
	assert.Equal(t, FlattenX, FlattenZ.Other())
	assert.Equal(t, Z, X.Locked())
}

func TestAxisYAMLRoundTrip(t *testing.T) {
	var views struct {
		Axes [2]Axis `yaml:"axes"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("axes: [flatten_z, flatten_x]\n"), &views))
	assert.Equal(t, [2]Axis{FlattenZ, FlattenX}, views.Axes)

	out, err := yaml.Marshal(views)
	require.NoError(t, err)
	assert.Contains(t, string(out), "flatten_x")

	assert.Error(t, yaml.Unmarshal([]byte("axes: [diagonal]\n"), &views))
}
