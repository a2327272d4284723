package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/planeshift/internal/engine/physics"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Camera.RotationDuration < 0 {
		errs = append(errs, invalid("camera.rotation_duration %v is negative", c.Camera.RotationDuration))
	}
	if _, err := c.Camera.EasingFunc(); err != nil {
		errs = append(errs, invalid("camera easing: %v", err))
	}
	if _, err := c.Camera.VerticalFollow.NewDeadZone(); err != nil {
		errs = append(errs, invalid("camera.vertical_follow: %v", err))
	}
	if _, err := c.Camera.VerticalFollow.NewSmoothing(); err != nil {
		errs = append(errs, invalid("camera.vertical_follow: %v", err))
	}

	for i, a := range c.Projection.ViewAxes {
		if !a.Valid() {
			errs = append(errs, invalid("projection.view_axes[%d] = %d is not an axis", i, int(a)))
		}
	}
	if c.Projection.InitialView != 0 && c.Projection.InitialView != 1 {
		errs = append(errs, invalid("projection.initial_view %d must be 0 or 1", c.Projection.InitialView))
	}

	d := c.Depenetration
	if d.Iterations < 1 {
		errs = append(errs, invalid("depenetration.iterations %d must be at least 1", d.Iterations))
	}
	if d.OverlapInflation < 0.8 || d.OverlapInflation > 1.2 {
		errs = append(errs, invalid("depenetration.overlap_inflation %v outside [0.8, 1.2]", d.OverlapInflation))
	}
	if d.Skin < 0 || d.GroundSkin < 0 {
		errs = append(errs, invalid("depenetration skins must not be negative"))
	}
	if d.MaxStep <= 0 || d.MaxTotal <= 0 {
		errs = append(errs, invalid("depenetration.max_step and max_total must be positive"))
	}
	if _, err := physics.MaskFromNames(d.GroundLayers); err != nil {
		errs = append(errs, invalid("depenetration.ground_layers: %v", err))
	}

	m := c.Motion
	if m.Gravity < 0 || m.MaxFallSpeed < 0 {
		errs = append(errs, invalid("motion gravity and max_fall_speed must not be negative"))
	}
	if m.LandingResponse <= 0 || m.LandingResponse > 1 {
		errs = append(errs, invalid("motion.landing_response %v outside (0, 1]", m.LandingResponse))
	}

	if c.Physics.FixedStep <= 0 {
		errs = append(errs, invalid("physics.fixed_step %v must be positive", c.Physics.FixedStep))
	}
	if c.Physics.MaxSubsteps < 1 {
		errs = append(errs, invalid("physics.max_substeps %d must be at least 1", c.Physics.MaxSubsteps))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}
