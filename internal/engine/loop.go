// Package engine implements the fixed-step driver: sample delta time,
// accumulate lag, run ticks while lag is at least one fixed step, then render
// once if any tick ran. Host event polling, message-bus draining and
// state-stack dispatch are wired into ebiten's Update/Draw pair instead
// of a hand-rolled window loop.
package engine

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/barhaim/arkgo/internal/ecs/message"
	"github.com/barhaim/arkgo/internal/state"
)

// Metrics reports the loop's running counters: ticks and frames since
// start, plus the lag still waiting for the next fixed step.
type Metrics struct {
	Ticks  uint64
	Frames uint64
	Lag    time.Duration
}

// Loop owns one MessageBus and one Stack and drives them against ebiten's
// Game interface: Update is the fixed-step tick driver, Draw is the
// pre/render/post pass.
type Loop struct {
	Bus    *message.Bus
	Stack  *state.Stack
	Config Config

	events *HostEvents

	renderHook func(screen *ebiten.Image)

	lag     time.Duration
	lastAt  time.Time
	started bool
	ranTick bool

	ticks  uint64
	frames uint64
}

// NewLoop creates a Loop over bus and stack, configured by cfg.
func NewLoop(cfg Config, bus *message.Bus, stack *state.Stack) *Loop {
	if cfg.FixedStep <= 0 {
		cfg.FixedStep = DefaultFixedStep
	}
	return &Loop{
		Bus:    bus,
		Stack:  stack,
		Config: cfg,
		events: NewHostEvents(),
	}
}

// HostEvents returns the loop's event adapter, so host code (a quit
// button, a window-close handler) can call RequestClose.
func (l *Loop) HostEvents() *HostEvents { return l.events }

// SetRenderHook installs a callback invoked at the start of every Draw
// with the frame's screen, before the stack's pre/render/post pass. This
// is the hook point a host uses to point its Rendering system at the
// frame's *ebiten.Image.
func (l *Loop) SetRenderHook(f func(screen *ebiten.Image)) { l.renderHook = f }

// Metrics returns the loop's current counters.
func (l *Loop) Metrics() Metrics {
	return Metrics{Ticks: l.ticks, Frames: l.frames, Lag: l.lag}
}

// Update samples delta time, accumulates it into the lag counter, and
// runs one engine tick for every fixed step of lag outstanding (or
// exactly one tick with the raw delta, in non-fixed-step mode). It
// implements ebiten.Game.
func (l *Loop) Update() error {
	now := time.Now()
	if !l.started {
		l.lastAt = now
		l.started = true
	}
	dt := now.Sub(l.lastAt)
	l.lastAt = now
	l.lag += dt
	l.ranTick = false

	if l.Config.FixedStepMode {
		for l.lag >= l.Config.FixedStep {
			l.lag -= l.Config.FixedStep
			l.tick(l.Config.FixedStep.Seconds())
		}
	} else {
		l.tick(dt.Seconds())
	}

	if l.events.CloseRequested() || l.Stack.Len() == 0 {
		return ebiten.Termination
	}
	return nil
}

// tick runs one engine tick: pump host events into the stack, drain the
// message bus into the stack, apply the stack's pending push/pop changes,
// then update.
func (l *Loop) tick(dt float64) {
	for _, ev := range l.events.Poll() {
		l.Stack.DispatchEvent(ev)
	}
	l.Bus.Drain(func(m message.Message) {
		l.Stack.DispatchMessage(m)
	})
	l.Stack.ApplyPending()
	l.Stack.Update(dt)
	l.ticks++
	l.ranTick = true
}

// Draw runs the pre/render/post pass over the stack, but only when the
// preceding Update ran at least one tick; with the display refresh
// outpacing the tick rate, the in-between Draw calls have no new state to
// present and are skipped. It implements ebiten.Game.
func (l *Loop) Draw(screen *ebiten.Image) {
	if !l.ranTick {
		return
	}
	l.frames++
	if l.renderHook != nil {
		l.renderHook(screen)
	}
	l.Stack.PreRender()
	l.Stack.Render()
	l.Stack.PostRender()
}

// Layout reports the host's requested size unchanged and records it as a
// pending resize event; it implements ebiten.Game.
func (l *Loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	l.events.NoteLayout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
