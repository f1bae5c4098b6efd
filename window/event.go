// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import "fmt"

// Event is a platform event. Concrete event types are listed below;
// implementations outside this package may add their own.
type Event interface {
	ImplementsEvent()
}

// Resized reports a new framebuffer size.
type Resized struct {
	Width  int
	Height int
}

// CloseRequested reports that the user asked to close the window.
type CloseRequested struct{}

// KeyEvent reports a keyboard key transition.
type KeyEvent struct {
	Key      Key
	Scancode int
	Action   Action
	Mods     Modifiers
}

// CursorMoved reports the cursor position in window coordinates.
type CursorMoved struct {
	X, Y float64
}

// MouseEvent reports a mouse button transition.
type MouseEvent struct {
	Button MouseButton
	Action Action
	Mods   Modifiers
}

// Scrolled reports a scroll wheel or touchpad scroll.
type Scrolled struct {
	DX, DY float64
}

// Focused reports a change of input focus.
type Focused struct {
	Focused bool
}

func (Resized) ImplementsEvent()        {}
func (CloseRequested) ImplementsEvent() {}
func (KeyEvent) ImplementsEvent()       {}
func (CursorMoved) ImplementsEvent()    {}
func (MouseEvent) ImplementsEvent()     {}
func (Scrolled) ImplementsEvent()       {}
func (Focused) ImplementsEvent()        {}

func (e Resized) String() string { return fmt.Sprintf("Resized(%dx%d)", e.Width, e.Height) }

func (CloseRequested) String() string { return "CloseRequested" }

func (e KeyEvent) String() string {
	return fmt.Sprintf("Key(%s %s mods=%d)", e.Key, e.Action, e.Mods)
}

// Action is a key or button transition.
type Action uint8

// Actions.
const (
	Press Action = iota
	Release
	Repeat
)

func (a Action) String() string {
	switch a {
	case Press:
		return "press"
	case Release:
		return "release"
	case Repeat:
		return "repeat"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Modifiers is a set of modifier keys held during an event.
type Modifiers uint8

// Modifier keys.
const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether all modifiers in m are set.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// MouseButton identifies a mouse button.
type MouseButton uint8

// Mouse buttons.
const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseOther
)

// Key identifies a keyboard key independent of layout.
type Key int

// Keys. Letters, digits and function keys are contiguous so platforms can
// map them by offset.
const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyUnknown:   "unknown",
	KeySpace:     "space",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("f%d", int(k-KeyF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}
