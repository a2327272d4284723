// Package desktop runs a game in an SDL window with a 2D debug view of the active plane.
package desktop

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/engine/input"
	"github.com/Faultbox/planeshift/internal/engine/physics"
	"github.com/Faultbox/planeshift/internal/engine/window"
	"github.com/Faultbox/planeshift/internal/game"
	"github.com/Faultbox/planeshift/internal/game/controls"
	"github.com/Faultbox/planeshift/pkg/math"
)

// maxFrameDelta keeps a stalled frame from feeding a huge step into the switch timer.
const maxFrameDelta = 0.1

// Bindings maps each action to its keys.
var Bindings = map[controls.Action][]sdl.Scancode{
	controls.MoveLeft:  {sdl.SCANCODE_A, sdl.SCANCODE_LEFT},
	controls.MoveRight: {sdl.SCANCODE_D, sdl.SCANCODE_RIGHT},
	controls.Jump:      {sdl.SCANCODE_SPACE, sdl.SCANCODE_W, sdl.SCANCODE_UP},
	controls.Toggle:    {sdl.SCANCODE_TAB, sdl.SCANCODE_Q},
}

var (
	colorBackground = window.Color{R: 24, G: 26, B: 33, A: 255}
	colorGround     = window.Color{R: 96, G: 140, B: 88, A: 255}
	colorDefault    = window.Color{R: 120, G: 120, B: 140, A: 255}
	colorTrigger    = window.Color{R: 230, G: 190, B: 60, A: 120}
	colorPlayer     = window.Color{R: 220, G: 90, B: 80, A: 255}
	colorOutline    = window.Color{R: 255, G: 255, B: 255, A: 60}
	colorSeam       = window.Color{R: 80, G: 160, B: 220, A: 160}
)

// Run opens a window and drives g until the window closes, Escape is pressed or ctx is
// done.
func Run(ctx context.Context, g *game.Game, log *zap.Logger) error {
	cfg := g.Config()
	w, err := window.New(window.Config{
		Title:      "planeshift",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer w.Close()

	in := input.New()
	last := time.Now()
	fpsTimer := last
	frames := 0

	log.Info("starting game loop")
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		if in.Update() || in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			return nil
		}

		g.Frame(dt, readFrame(in))
		draw(w, g)
		w.Present()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			w.SetTitle(fmt.Sprintf("planeshift  view %d  %d fps", g.Coordinator().CurrentView(), frames))
			log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

// readFrame collects the bound actions for this frame.
func readFrame(in *input.Input) controls.Frame {
	bound := func(a controls.Action, test func(sdl.Scancode) bool) bool {
		for _, k := range Bindings[a] {
			if test(k) {
				return true
			}
		}
		return false
	}
	return controls.Frame{
		Left:          bound(controls.MoveLeft, in.IsKeyHeld),
		Right:         bound(controls.MoveRight, in.IsKeyHeld),
		JumpPressed:   bound(controls.Jump, in.IsKeyPressed),
		JumpReleased:  bound(controls.Jump, in.IsKeyReleased),
		TogglePressed: bound(controls.Toggle, in.IsKeyPressed),
	}
}

// projector maps world positions onto the screen as seen from the rig.
type projector struct {
	pivot  math.Vec3
	rx, rz float32
	scale  float32
	cx, cy float32
}

func (p projector) point(v math.Vec3) (float32, float32) {
	d := v.Sub(p.pivot)
	sx := d.X*p.rx + d.Z*p.rz
	return p.cx + sx*p.scale, p.cy - d.Y*p.scale
}

// rect returns the screen rectangle of a box.
func (p projector) rect(b physics.AABB) (x, y, w, h float32) {
	c := b.Center()
	e := b.Extents()
	halfW := math.Abs(e.X*p.rx) + math.Abs(e.Z*p.rz)
	sx, sy := p.point(c)
	return sx - halfW*p.scale, sy - e.Y*p.scale, 2 * halfW * p.scale, 2 * e.Y * p.scale
}

func draw(w *window.Window, g *game.Game) {
	width, height := w.GetSize()
	rig := g.Rig()
	rx, rz := rig.RightDirection()
	p := projector{
		pivot: rig.PivotPosition,
		rx:    rx,
		rz:    rz,
		scale: g.Config().Window.Scale,
		cx:    float32(width) / 2,
		cy:    float32(height) / 2,
	}

	w.Clear(colorBackground)

	sx, _ := p.point(rig.PivotPosition)
	w.DrawLine(sx, 0, sx, float32(height), colorSeam)

	player := g.Motor().Body().Collider
	for _, c := range g.World().Colliders() {
		if c == player {
			continue
		}
		color := colorDefault
		switch {
		case c.Trigger:
			color = colorTrigger
		case c.Layer == physics.LayerGround:
			color = colorGround
		}
		x, y, bw, bh := p.rect(c.Bounds())
		w.FillRect(x, y, bw, bh, color)
		w.DrawRect(x, y, bw, bh, colorOutline)
	}

	x, y, bw, bh := p.rect(player.Bounds())
	w.FillRect(x, y, bw, bh, colorPlayer)
}
