package math

import (
	"fmt"
	"sort"
)

// Easing maps normalized time in [0, 1] to eased progress in [0, 1].
type Easing func(t float32) float32

// Linear returns t unchanged.
func Linear(t float32) float32 { return Clamp01(t) }

// SmoothStep eases in and out with a cubic Hermite curve.
func SmoothStep(t float32) float32 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// EaseInOutCubic accelerates until halfway, then decelerates.
func EaseInOutCubic(t float32) float32 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float32) float32 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EasingByName resolves a named easing curve.
func EasingByName(name string) (Easing, error) {
	switch name {
	case "", "smoothstep":
		return SmoothStep, nil
	case "linear":
		return Linear, nil
	case "ease_in_out_cubic":
		return EaseInOutCubic, nil
	case "ease_out_quad":
		return EaseOutQuad, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

// Keyframe is a point on a piecewise-linear curve.
type Keyframe struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
}

// CurveEasing builds an easing from keyframes sorted by time.
// The curve is evaluated piecewise-linearly and clamped to [0, 1].
func CurveEasing(keys []Keyframe) (Easing, error) {
	if len(keys) < 2 {
		return nil, fmt.Errorf("curve needs at least 2 keyframes, got %d", len(keys))
	}
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	return func(t float32) float32 {
		t = Clamp01(t)
		if t <= sorted[0].Time {
			return Clamp01(sorted[0].Value)
		}
		for i := 1; i < len(sorted); i++ {
			a, b := sorted[i-1], sorted[i]
			if t <= b.Time {
				span := b.Time - a.Time
				if span <= 0 {
					return Clamp01(b.Value)
				}
				return Clamp01(Lerp(a.Value, b.Value, (t-a.Time)/span))
			}
		}
		return Clamp01(sorted[len(sorted)-1].Value)
	}, nil
}
