package math

import "math"

// Epsilon is the tolerance used for near-zero checks.
const Epsilon = 1e-5

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Sign returns -1, 0 or 1.
func Sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// MoveTowards moves current towards target by at most maxDelta.
func MoveTowards(current, target, maxDelta float32) float32 {
	if Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

// SmoothDamp moves current towards target like a critically damped spring.
// velocity is updated in place. smoothTime is the approximate time to reach the target.
func SmoothDamp(current, target float32, velocity *float32, smoothTime, maxSpeed, dt float32) float32 {
	if dt <= 0 {
		return current
	}
	if smoothTime < 0.0001 {
		smoothTime = 0.0001
	}
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTarget := target
	maxChange := maxSpeed * smoothTime
	change = Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// Prevent overshooting
	if (originalTarget-current > 0) == (output > originalTarget) {
		output = originalTarget
		*velocity = (output - originalTarget) / dt
	}
	return output
}

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
