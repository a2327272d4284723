// Package controls routes player actions to the motor and the perspective switch.
package controls

import (
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/game/plane"
)

// Action is a bindable player action.
type Action int

const (
	MoveLeft Action = iota
	MoveRight
	Jump
	Toggle
)

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "move_left"
	case MoveRight:
		return "move_right"
	case Jump:
		return "jump"
	case Toggle:
		return "toggle"
	}
	return "unknown"
}

// Frame is the action state for one frame.
type Frame struct {
	Left, Right   bool // held
	JumpPressed   bool
	JumpReleased  bool
	TogglePressed bool
}

// Motor is the input surface of the player motor.
type Motor interface {
	SetMove(x float32)
	QueueJump()
	JumpCanceled()
	ActivePlane() plane.Plane
}

// Switcher is the input surface of the view switch.
type Switcher interface {
	TogglePerspective()
	IsSwitching() bool
	JumpOnlyDuringSwitch() bool
}

// View gives the camera's screen-right direction on the XZ plane.
type View interface {
	RightDirection() (x, z float32)
}

// Router turns frames into motor and switch calls. Lateral input is dropped while a
// jump-only switch runs.
type Router struct {
	motor    Motor
	switcher Switcher
	view     View
	log      *zap.Logger
}

// NewRouter creates a router. switcher and view may be nil.
func NewRouter(motor Motor, switcher Switcher, view View, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{motor: motor, switcher: switcher, view: view, log: log}
}

// Route applies one frame of input.
func (r *Router) Route(f Frame) {
	if f.TogglePressed && r.switcher != nil {
		r.log.Debug("toggle requested", zap.Bool("switching", r.switcher.IsSwitching()))
		r.switcher.TogglePerspective()
	}

	if r.motor == nil {
		return
	}

	var axis float32
	if f.Right {
		axis++
	}
	if f.Left {
		axis--
	}
	if r.lateralSuppressed() {
		axis = 0
	}
	r.motor.SetMove(axis * r.screenSign())

	if f.JumpPressed {
		r.motor.QueueJump()
	}
	if f.JumpReleased {
		r.motor.JumpCanceled()
	}
}

func (r *Router) lateralSuppressed() bool {
	return r.switcher != nil && r.switcher.IsSwitching() && r.switcher.JumpOnlyDuringSwitch()
}

// screenSign is +1 when screen-right points along the active plane's positive axis.
func (r *Router) screenSign() float32 {
	if r.view == nil {
		return 1
	}
	x, z := r.view.RightDirection()
	c := x
	if r.motor.ActivePlane() == plane.Z {
		c = z
	}
	if c < 0 {
		return -1
	}
	return 1
}
