package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/planeshift/pkg/math"
)

func TestControllerProgressAndCompletion(t *testing.T) {
	c := NewController(1, math.Linear)
	assert.False(t, c.IsActive())

	c.BeginSwitch(1)
	assert.True(t, c.IsActive())
	assert.Equal(t, 1, c.TargetView())

	p, done := c.UpdateRotation(0.25)
	assert.False(t, done)
	assert.InDelta(t, 0.25, p, 1e-6)

	p, done = c.UpdateRotation(0.5)
	assert.False(t, done)
	assert.InDelta(t, 0.75, p, 1e-6)

	_, done = c.UpdateRotation(0.25)
	assert.True(t, done)
	assert.False(t, c.IsActive())

	c.CompleteSwitch()
	assert.Zero(t, c.Elapsed())
}

func TestControllerZeroDurationCompletesOnFirstUpdate(t *testing.T) {
	c := NewController(-2, nil)
	assert.Zero(t, c.Duration())
	c.BeginSwitch(0)
	_, done := c.UpdateRotation(0)
	assert.True(t, done)
}

func TestControllerProgressStaysBelowOneUntilDone(t *testing.T) {
	overshoot := func(t float32) float32 { return t * 2 }
	c := NewController(1, overshoot)
	c.BeginSwitch(1)
	p, done := c.UpdateRotation(0.9)
	assert.False(t, done)
	assert.Less(t, p, float32(1))
}

func TestControllerIgnoresNegativeDelta(t *testing.T) {
	c := NewController(1, math.Linear)
	c.BeginSwitch(1)
	c.UpdateRotation(0.5)
	p, _ := c.UpdateRotation(-1)
	assert.InDelta(t, 0.5, p, 1e-6)
}

func TestCompleteSwitchForcesInactive(t *testing.T) {
	c := NewController(1, math.Linear)
	c.BeginSwitch(1)
	c.UpdateRotation(0.3)
	c.CompleteSwitch()
	assert.False(t, c.IsActive())
	_, done := c.UpdateRotation(0.1)
	assert.True(t, done, "inactive controller reports done")
}
