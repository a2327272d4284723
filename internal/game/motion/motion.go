// Package motion holds the per-tick locomotion math for a plane-locked platformer body:
// lateral acceleration, gravity with ground stick, coyote time, jump buffering and
// landing slide damping.
package motion

import (
	"github.com/Faultbox/planeshift/pkg/math"
)

// Settings tunes the locomotion model. Units are world units and seconds.
type Settings struct {
	MoveSpeed    float32 `yaml:"move_speed"`
	Acceleration float32 `yaml:"acceleration"`
	Deceleration float32 `yaml:"deceleration"`
	AirControl   float32 `yaml:"air_control"` // multiplier on lateral rates while airborne

	Gravity      float32 `yaml:"gravity"`
	MaxFallSpeed float32 `yaml:"max_fall_speed"`
	GroundStick  float32 `yaml:"ground_stick"` // downward speed held while grounded

	JumpSpeed  float32 `yaml:"jump_speed"`
	JumpCut    float32 `yaml:"jump_cut"` // vertical multiplier applied when a rising jump is released
	CoyoteTime float32 `yaml:"coyote_time"`
	JumpBuffer float32 `yaml:"jump_buffer"`

	LandingSlideTime float32 `yaml:"landing_slide_time"`
	LandingResponse  float32 `yaml:"landing_response"` // lateral rate multiplier during the slide

	ProbeDistance float32 `yaml:"probe_distance"`
	GroundSkin    float32 `yaml:"ground_skin"`
}

// DefaultSettings returns a responsive platformer tuning.
func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:        6,
		Acceleration:     60,
		Deceleration:     80,
		AirControl:       0.6,
		Gravity:          30,
		MaxFallSpeed:     25,
		GroundStick:      2,
		JumpSpeed:        12,
		JumpCut:          0.5,
		CoyoteTime:       0.1,
		JumpBuffer:       0.12,
		LandingSlideTime: 0.08,
		LandingResponse:  0.35,
		ProbeDistance:    0.1,
		GroundSkin:       0.02,
	}
}

// Input is one tick of locomotion input.
type Input struct {
	Lateral  float32 // current velocity along the active plane
	Vertical float32 // current vertical velocity
	Move     float32 // stick value in [-1, 1]
	Grounded bool
	DT       float32
}

// Output is the velocity the body should carry after the tick.
type Output struct {
	Lateral  float32
	Vertical float32
	Jumped   bool
	Landed   bool
}

// Motion is the locomotion state of one body.
type Motion struct {
	Settings Settings

	wasGrounded bool
	coyote      float32
	buffer      float32
	slide       float32
}

// New creates a motion model with the given settings.
func New(s Settings) *Motion {
	return &Motion{Settings: s}
}

// QueueJump buffers a jump request for JumpBuffer seconds.
func (m *Motion) QueueJump() {
	m.buffer = m.Settings.JumpBuffer
}

// JumpCanceled shortens a rising jump. It returns the new vertical velocity.
func (m *Motion) JumpCanceled(vertical float32) float32 {
	m.buffer = 0
	if vertical > 0 {
		return vertical * m.Settings.JumpCut
	}
	return vertical
}

// JumpBuffered reports whether a jump request is still pending.
func (m *Motion) JumpBuffered() bool { return m.buffer > 0 }

// CoyoteRemaining returns the seconds left in the coyote window.
func (m *Motion) CoyoteRemaining() float32 { return max(m.coyote, 0) }

// Reset drops the coyote and landing slide windows after the body is teleported. A
// buffered jump and the grounded history are kept, so a jump pressed during a switch
// still fires and arriving on the ground is not counted as a landing.
func (m *Motion) Reset() {
	m.coyote = 0
	m.slide = 0
}

// Step advances the model by one tick.
func (m *Motion) Step(in Input) Output {
	s := m.Settings
	out := Output{Lateral: in.Lateral, Vertical: in.Vertical}

	if in.Grounded && !m.wasGrounded {
		out.Landed = true
		m.slide = s.LandingSlideTime
	}

	if in.Grounded {
		m.coyote = s.CoyoteTime
	} else {
		m.coyote -= in.DT
	}

	if m.buffer > 0 && (in.Grounded || m.coyote > 0) {
		out.Vertical = s.JumpSpeed
		out.Jumped = true
		m.buffer = 0
		m.coyote = 0
	} else {
		m.buffer -= in.DT
		out.Vertical = VerticalStep(out.Vertical, in.Grounded, s, in.DT)
	}

	rate := lateralRate(in.Lateral, in.Move, s)
	if !in.Grounded {
		rate *= s.AirControl
	}
	if m.slide > 0 {
		rate *= s.LandingResponse
		m.slide -= in.DT
	}
	out.Lateral = math.MoveTowards(in.Lateral, math.Clamp(in.Move, -1, 1)*s.MoveSpeed, rate*in.DT)

	m.wasGrounded = in.Grounded && !out.Jumped
	return out
}

// VerticalStep applies gravity or ground stick to a vertical velocity.
func VerticalStep(vy float32, grounded bool, s Settings, dt float32) float32 {
	if grounded && vy <= 0 {
		return -s.GroundStick
	}
	vy -= s.Gravity * dt
	if vy < -s.MaxFallSpeed {
		vy = -s.MaxFallSpeed
	}
	return vy
}

// lateralRate picks acceleration when pushing along the current motion and
// deceleration when releasing or turning around.
func lateralRate(current, move float32, s Settings) float32 {
	if move == 0 {
		return s.Deceleration
	}
	if current != 0 && math.Sign(current) != math.Sign(move) {
		return s.Deceleration
	}
	return s.Acceleration
}
