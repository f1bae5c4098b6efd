// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package desktop implements the "glfw" window platform.
//
// GLFW must be driven from the main OS thread. Programs using this package
// lock it before main runs:
//
//	func init() {
//	    runtime.LockOSThread()
//	}
package desktop

import (
	"fmt"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/harness/window"
)

// PlatformGLFW is the registry name of this platform.
const PlatformGLFW = "glfw"

func init() {
	window.Register(PlatformGLFW, func(opts window.Options) (window.Window, error) {
		w, err := Open(opts)
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}

var (
	initMu   sync.Mutex
	initErr  error
	inited   bool
	refCount int
)

func acquireGLFW() error {
	initMu.Lock()
	defer initMu.Unlock()
	if !inited {
		if err := glfw.Init(); err != nil {
			initErr = fmt.Errorf("desktop: init glfw: %w", err)
			return initErr
		}
		inited = true
	}
	refCount++
	return nil
}

func releaseGLFW() {
	initMu.Lock()
	defer initMu.Unlock()
	refCount--
	if refCount == 0 && inited {
		glfw.Terminate()
		inited = false
	}
}

// Window is a GLFW window without a client API; the GPU backend creates
// the surface.
type Window struct {
	win     *glfw.Window
	title   string
	pending []window.Event
	closed  bool
}

// Open creates a resizable window.
func Open(opts window.Options) (*Window, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := acquireGLFW(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	gw, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		releaseGLFW()
		return nil, fmt.Errorf("desktop: create window: %w", err)
	}

	w := &Window{win: gw, title: opts.Title}
	w.installCallbacks()
	return w, nil
}

func (w *Window) push(ev window.Event) {
	w.pending = append(w.pending, ev)
}

func (w *Window) installCallbacks() {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(window.Resized{Width: width, Height: height})
	})
	w.win.SetCloseCallback(func(gw *glfw.Window) {
		// The event loop decides when to stop.
		gw.SetShouldClose(false)
		w.push(window.CloseRequested{})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.push(window.KeyEvent{Key: mapKey(key), Scancode: scancode, Action: mapAction(action), Mods: mapMods(mods)})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(window.CursorMoved{X: x, Y: y})
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		w.push(window.MouseEvent{Button: mapButton(button), Action: mapAction(action), Mods: mapMods(mods)})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.push(window.Scrolled{DX: dx, DY: dy})
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.push(window.Focused{Focused: focused})
	})
}

// FramebufferSize returns the size in physical pixels.
func (w *Window) FramebufferSize() (int, int) {
	if w.closed {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// PollEvents processes pending OS events and returns those produced since
// the previous call.
func (w *Window) PollEvents(buf []window.Event) []window.Event {
	if w.closed {
		return buf
	}
	glfw.PollEvents()
	buf = append(buf, w.pending...)
	clear(w.pending)
	w.pending = w.pending[:0]
	return buf
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// RequestClose queues a CloseRequested event, as if the user had closed
// the window.
func (w *Window) RequestClose() {
	w.push(window.CloseRequested{})
}

// GLFW returns the underlying window, for surface creation.
func (w *Window) GLFW() *glfw.Window { return w.win }

// Close destroys the window and terminates GLFW with the last window.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.win.Destroy()
	releaseGLFW()
	return nil
}

var _ window.Window = (*Window)(nil)
