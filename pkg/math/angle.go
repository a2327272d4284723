package math

import "math"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / math.Pi
}

// Repeat wraps t into [0, length).
func Repeat(t, length float32) float32 {
	return Clamp(t-float32(math.Floor(float64(t/length)))*length, 0, length)
}

// DeltaAngle returns the shortest signed difference between two angles in degrees.
// The result is in [-180, 180].
func DeltaAngle(current, target float32) float32 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// LerpAngle interpolates between two angles in degrees along the shortest arc.
func LerpAngle(a, b, t float32) float32 {
	return a + DeltaAngle(a, b)*Clamp01(t)
}
