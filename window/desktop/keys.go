// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/harness/window"
)

var namedKeys = map[glfw.Key]window.Key{
	glfw.KeySpace:     window.KeySpace,
	glfw.KeyEscape:    window.KeyEscape,
	glfw.KeyEnter:     window.KeyEnter,
	glfw.KeyTab:       window.KeyTab,
	glfw.KeyBackspace: window.KeyBackspace,
	glfw.KeyLeft:      window.KeyLeft,
	glfw.KeyRight:     window.KeyRight,
	glfw.KeyUp:        window.KeyUp,
	glfw.KeyDown:      window.KeyDown,
}

func mapKey(k glfw.Key) window.Key {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return window.KeyA + window.Key(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return window.Key0 + window.Key(k-glfw.Key0)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return window.KeyF1 + window.Key(k-glfw.KeyF1)
	}
	if key, ok := namedKeys[k]; ok {
		return key
	}
	return window.KeyUnknown
}

func mapAction(a glfw.Action) window.Action {
	switch a {
	case glfw.Release:
		return window.Release
	case glfw.Repeat:
		return window.Repeat
	default:
		return window.Press
	}
}

func mapMods(m glfw.ModifierKey) window.Modifiers {
	var mods window.Modifiers
	if m&glfw.ModShift != 0 {
		mods |= window.ModShift
	}
	if m&glfw.ModControl != 0 {
		mods |= window.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		mods |= window.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		mods |= window.ModSuper
	}
	return mods
}

func mapButton(b glfw.MouseButton) window.MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return window.MouseLeft
	case glfw.MouseButtonRight:
		return window.MouseRight
	case glfw.MouseButtonMiddle:
		return window.MouseMiddle
	default:
		return window.MouseOther
	}
}
