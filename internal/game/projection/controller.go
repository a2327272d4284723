// Package projection drives the perspective switch: camera yaw, player re-mapping and
// terrain re-projection.
package projection

import (
	"github.com/Faultbox/planeshift/pkg/math"
)

// Controller times one camera rotation and reports eased progress.
type Controller struct {
	duration float32
	easing   math.Easing

	target  int
	elapsed float32
	active  bool
}

// NewController creates an inactive controller. A nil easing is linear.
func NewController(duration float32, easing math.Easing) *Controller {
	c := &Controller{}
	c.SetDuration(duration)
	c.SetEasing(easing)
	return c
}

// SetDuration changes the rotation length in seconds. Negative values are treated as 0.
func (c *Controller) SetDuration(duration float32) {
	c.duration = max(duration, 0)
}

// Duration returns the rotation length in seconds.
func (c *Controller) Duration() float32 { return c.duration }

// SetEasing changes the progress curve.
func (c *Controller) SetEasing(easing math.Easing) {
	if easing == nil {
		easing = math.Linear
	}
	c.easing = easing
}

// BeginSwitch starts a rotation towards view target.
func (c *Controller) BeginSwitch(target int) {
	c.target = target
	c.elapsed = 0
	c.active = true
}

// UpdateRotation advances the rotation by dt. It returns the eased progress while the
// rotation runs, or done once elapsed reaches the duration, which also deactivates the
// controller.
func (c *Controller) UpdateRotation(dt float32) (progress float32, done bool) {
	if !c.active {
		return 0, true
	}
	c.elapsed += max(dt, 0)
	if c.elapsed >= c.duration {
		c.active = false
		return 1, true
	}
	t := c.elapsed / c.duration
	p := math.Clamp01(c.easing(t))
	// the curve may overshoot 1 before the end; done is only signaled by time
	if p >= 1 {
		p = 1 - math.Epsilon
	}
	return p, false
}

// CompleteSwitch forces the controller inactive and resets the elapsed time.
func (c *Controller) CompleteSwitch() {
	c.active = false
	c.elapsed = 0
}

// IsActive reports whether a rotation is in progress.
func (c *Controller) IsActive() bool { return c.active }

// TargetView returns the view index of the last BeginSwitch.
func (c *Controller) TargetView() int { return c.target }

// Elapsed returns the seconds since BeginSwitch.
func (c *Controller) Elapsed() float32 { return c.elapsed }
