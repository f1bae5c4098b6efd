// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window defines the platform contract consumed by the harness:
// a window that reports its framebuffer size and produces a stream of
// input and window events.
//
// Platform implementations register themselves by name, the same way GPU
// backends do:
//
//	import _ "github.com/gogpu/harness/window/desktop" // registers "glfw"
//
//	win, err := window.Open("glfw", window.Options{Title: "demo", Width: 800, Height: 600})
//
// The "headless" platform is always available and is used for tests and
// offscreen rendering.
package window

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Window errors.
var (
	// ErrUnknownPlatform is returned by Open for an unregistered platform name.
	ErrUnknownPlatform = errors.New("window: unknown platform")

	// ErrInvalidSize is returned when a window is requested with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("window: invalid size")
)

// Window is a drawable OS window (or a stand-in for one).
//
// A Window is driven by a single goroutine. PollEvents is called once per
// loop iteration and returns every event produced since the previous call.
type Window interface {
	// FramebufferSize returns the current physical size in pixels.
	FramebufferSize() (width, height int)

	// PollEvents appends all pending events to buf and returns it.
	PollEvents(buf []Event) []Event

	// Title returns the window title.
	Title() string

	// Close destroys the window. It is safe to call more than once.
	Close() error
}

// Options describes a window to open.
type Options struct {
	Title  string
	Width  int
	Height int
}

// Validate reports whether the options describe a window that can be opened.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	return nil
}

// Opener creates a window for a platform.
type Opener func(opts Options) (Window, error)

var (
	registryMu sync.RWMutex
	platforms  = make(map[string]Opener)
)

// Register registers a platform under name.
// It is typically called from init. A later registration replaces an
// earlier one with the same name.
func Register(name string, open Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	platforms[name] = open
}

// Unregister removes a platform. This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(platforms, name)
}

// Platforms returns the registered platform names in sorted order.
func Platforms() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens a window on the named platform.
func Open(name string, opts Options) (Window, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	registryMu.RLock()
	open, ok := platforms[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
	}
	return open(opts)
}

func init() {
	Register(PlatformHeadless, func(opts Options) (Window, error) {
		return NewHeadless(opts), nil
	})
}
