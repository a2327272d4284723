package game

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/planeshift/internal/game/controls"
)

// Cue presses or releases an action at a point in simulated time.
type Cue struct {
	At      time.Duration
	Action  controls.Action
	Pressed bool
}

// Script is a timed input sequence for headless runs.
type Script []Cue

// DemoScript runs right, switches perspective mid-run, hops, and switches back.
func DemoScript() Script {
	return Script{
		{At: 0, Action: controls.MoveRight, Pressed: true},
		{At: 1200 * time.Millisecond, Action: controls.Toggle, Pressed: true},
		{At: 1250 * time.Millisecond, Action: controls.Toggle},
		{At: 2200 * time.Millisecond, Action: controls.Jump, Pressed: true},
		{At: 2400 * time.Millisecond, Action: controls.Jump},
		{At: 3500 * time.Millisecond, Action: controls.Toggle, Pressed: true},
		{At: 3550 * time.Millisecond, Action: controls.Toggle},
		{At: 4500 * time.Millisecond, Action: controls.MoveRight},
		{At: 4500 * time.Millisecond, Action: controls.MoveLeft, Pressed: true},
		{At: 5500 * time.Millisecond, Action: controls.MoveLeft},
	}
}

// scriptPlayer turns cues into frames.
type scriptPlayer struct {
	cues []Cue
	next int
	held map[controls.Action]bool
}

func newScriptPlayer(s Script) *scriptPlayer {
	cues := append([]Cue(nil), s...)
	sort.SliceStable(cues, func(i, j int) bool { return cues[i].At < cues[j].At })
	return &scriptPlayer{cues: cues, held: make(map[controls.Action]bool)}
}

// frame returns the input for the frame ending at now.
func (p *scriptPlayer) frame(now time.Duration) controls.Frame {
	var f controls.Frame
	for p.next < len(p.cues) && p.cues[p.next].At <= now {
		c := p.cues[p.next]
		p.next++
		was := p.held[c.Action]
		p.held[c.Action] = c.Pressed
		switch {
		case c.Action == controls.Jump && c.Pressed && !was:
			f.JumpPressed = true
		case c.Action == controls.Jump && !c.Pressed && was:
			f.JumpReleased = true
		case c.Action == controls.Toggle && c.Pressed && !was:
			f.TogglePressed = true
		}
	}
	f.Left = p.held[controls.MoveLeft]
	f.Right = p.held[controls.MoveRight]
	return f
}

// RunHeadless plays script for duration of simulated time at one fixed step per frame,
// as fast as possible. It stops early when ctx is done.
func (g *Game) RunHeadless(ctx context.Context, script Script, duration time.Duration) error {
	dt := g.cfg.Physics.FixedStep
	frameDur := time.Duration(float64(dt) * float64(time.Second))
	p := newScriptPlayer(script)

	g.log.Info("headless run", zap.Duration("duration", duration), zap.Int("cues", len(script)))

	var now time.Duration
	lastReport := time.Duration(-1)
	for now < duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now += frameDur
		g.Frame(dt, p.frame(now))

		if sec := now / time.Second; sec != lastReport {
			lastReport = sec
			g.log.Info("tick",
				zap.Duration("t", now),
				zap.Int("view", g.coordinator.CurrentView()),
				zap.Any("player", g.motor.Body().Position()),
				zap.Bool("grounded", g.motor.Grounded()),
			)
		}
	}

	// let a switch started near the end settle
	for i := 0; g.coordinator.IsSwitching() && i < 600; i++ {
		g.Frame(dt, p.frame(now))
	}
	return nil
}
