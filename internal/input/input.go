// Package input turns the host's key press/release stream into per-frame
// action state: held for one or more frames, or pressed this frame.
package input

import (
	"fmt"
	"log/slog"

	"fordview/hal"
)

// Action is a named viewer command.
type Action uint8

const (
	ZoomIn Action = iota + 1
	ZoomOut
	PanLeft
	PanRight
	Reset
	ToggleTiling
	ToggleHUD
	Quit
)

func (a Action) String() string {
	switch a {
	case ZoomIn:
		return "zoom-in"
	case ZoomOut:
		return "zoom-out"
	case PanLeft:
		return "pan-left"
	case PanRight:
		return "pan-right"
	case Reset:
		return "reset"
	case ToggleTiling:
		return "toggle-tiling"
	case ToggleHUD:
		return "toggle-hud"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

type keyState struct {
	down bool
	// tapped latches a press so a key released before the next Update still
	// counts for one frame.
	tapped bool
	hold   int
}

// Bindings maps keys to actions and tracks how long each key has been held.
type Bindings struct {
	keys    map[hal.KeyCode]*keyState
	actions map[Action][]hal.KeyCode
	warned  map[Action]bool
	log     *slog.Logger
}

// New returns empty bindings. A nil logger discards warnings.
func New(log *slog.Logger) *Bindings {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Bindings{
		keys:    make(map[hal.KeyCode]*keyState),
		actions: make(map[Action][]hal.KeyCode),
		warned:  make(map[Action]bool),
		log:     log,
	}
}

// Default returns the viewer's key layout.
func Default(log *slog.Logger) *Bindings {
	b := New(log)
	b.Bind(hal.KeyUp, ZoomIn)
	b.Bind(hal.KeyW, ZoomIn)
	b.Bind(hal.KeyPlus, ZoomIn)
	b.Bind(hal.KeyDown, ZoomOut)
	b.Bind(hal.KeyS, ZoomOut)
	b.Bind(hal.KeyMinus, ZoomOut)
	b.Bind(hal.KeyLeft, PanLeft)
	b.Bind(hal.KeyA, PanLeft)
	b.Bind(hal.KeyRight, PanRight)
	b.Bind(hal.KeyD, PanRight)
	b.Bind(hal.KeyHome, Reset)
	b.Bind(hal.KeyTab, ToggleTiling)
	b.Bind(hal.KeyF1, ToggleHUD)
	b.Bind(hal.KeyEscape, Quit)
	return b
}

// Bind adds code as a trigger for a. A key may trigger several actions.
func (b *Bindings) Bind(code hal.KeyCode, a Action) {
	for _, c := range b.actions[a] {
		if c == code {
			return
		}
	}
	b.actions[a] = append(b.actions[a], code)
	if b.keys[code] == nil {
		b.keys[code] = &keyState{}
	}
}

// Handle records a key event. Events for unbound keys are ignored.
func (b *Bindings) Handle(ev hal.KeyEvent) {
	s := b.keys[ev.Code]
	if s == nil {
		return
	}
	if ev.Press {
		if !s.down {
			s.tapped = true
		}
		s.down = true
		return
	}
	s.down = false
}

// Update advances hold counts by one frame. Call it once per frame after
// handling that frame's events.
func (b *Bindings) Update() {
	for _, s := range b.keys {
		if s.down || s.tapped {
			s.hold++
		} else {
			s.hold = 0
		}
		s.tapped = false
	}
}

// IsDown reports whether any key bound to a has been held for at least one
// frame.
func (b *Bindings) IsDown(a Action) bool {
	return b.any(a, func(s *keyState) bool { return s.hold >= 1 })
}

// IsPressed reports whether a key bound to a went down this frame.
func (b *Bindings) IsPressed(a Action) bool {
	return b.any(a, func(s *keyState) bool { return s.hold == 1 })
}

func (b *Bindings) any(a Action, pred func(*keyState) bool) bool {
	codes, ok := b.actions[a]
	if !ok {
		if !b.warned[a] {
			b.warned[a] = true
			b.log.Warn("query for unbound action", "action", a)
		}
		return false
	}
	for _, c := range codes {
		if pred(b.keys[c]) {
			return true
		}
	}
	return false
}
