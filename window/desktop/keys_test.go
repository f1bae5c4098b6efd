// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package desktop

import (
	"slices"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/harness/window"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		in   glfw.Key
		want window.Key
	}{
		{glfw.KeyA, window.KeyA},
		{glfw.KeyM, window.KeyM},
		{glfw.KeyZ, window.KeyZ},
		{glfw.Key0, window.Key0},
		{glfw.Key7, window.Key7},
		{glfw.KeyF1, window.KeyF1},
		{glfw.KeyF12, window.KeyF12},
		{glfw.KeyEscape, window.KeyEscape},
		{glfw.KeySpace, window.KeySpace},
		{glfw.KeyLeft, window.KeyLeft},
		{glfw.KeyF13, window.KeyUnknown},
		{glfw.KeyUnknown, window.KeyUnknown},
	}
	for _, tt := range tests {
		if got := mapKey(tt.in); got != tt.want {
			t.Errorf("mapKey(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMapAction(t *testing.T) {
	got := []window.Action{mapAction(glfw.Press), mapAction(glfw.Release), mapAction(glfw.Repeat)}
	want := []window.Action{window.Press, window.Release, window.Repeat}
	if !slices.Equal(got, want) {
		t.Errorf("mapAction = %v, want %v", got, want)
	}
}

func TestMapMods(t *testing.T) {
	got := mapMods(glfw.ModShift | glfw.ModSuper)
	if got != window.ModShift|window.ModSuper {
		t.Errorf("mapMods(shift|super) = %b", got)
	}
	if mapMods(0) != 0 {
		t.Errorf("mapMods(0) = %b", mapMods(0))
	}
	if !mapMods(glfw.ModControl | glfw.ModAlt).Has(window.ModCtrl | window.ModAlt) {
		t.Error("mapMods(ctrl|alt) lost a modifier")
	}
}

func TestMapButton(t *testing.T) {
	tests := map[glfw.MouseButton]window.MouseButton{
		glfw.MouseButtonLeft:   window.MouseLeft,
		glfw.MouseButtonRight:  window.MouseRight,
		glfw.MouseButtonMiddle: window.MouseMiddle,
		glfw.MouseButton4:      window.MouseOther,
	}
	for in, want := range tests {
		if got := mapButton(in); got != want {
			t.Errorf("mapButton(%d) = %v, want %v", in, got, want)
		}
	}
}

func TestRegistered(t *testing.T) {
	if !slices.Contains(window.Platforms(), PlatformGLFW) {
		t.Errorf("Platforms() = %v, want %s", window.Platforms(), PlatformGLFW)
	}
}
