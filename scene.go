// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package harness

import (
	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/window"
)

// Scene renders into the frames produced by the harness.
//
// A Scene is created once, before the event loop starts, and lives until
// the loop ends. It owns all of its GPU state; the harness knows nothing
// about it beyond this interface.
type Scene interface {
	// Draw records the commands for one frame into enc, targeting target.
	// It is called exactly once per acquired frame, after any pending
	// swapchain rebuild. Draw must not submit enc and must not keep enc or
	// target after returning. A non-nil error abandons the frame.
	Draw(enc gpu.CommandEncoder, target gpu.TextureView) error
}

// EventHandler is implemented by scenes that react to input.
//
// HandleEvent receives every platform event, including the Resized and
// CloseRequested events the driver itself consumes, before the driver
// handles it.
type EventHandler interface {
	HandleEvent(ev window.Event)
}

// Releaser is implemented by scenes that free GPU resources on shutdown.
// Release is called after the event loop ends, while the device is alive.
type Releaser interface {
	Release()
}

// SceneFunc constructs a scene from the device and caller-supplied
// arguments. It may create pipelines, buffers and bind group layouts.
type SceneFunc[A any] func(dev gpu.Device, args A) (Scene, error)

// DeviceLost is delivered to the scene's HandleEvent when the device is
// lost. The loop ends with an error wrapping gpu.ErrDeviceLost right after.
type DeviceLost struct {
	Err error
}

func (DeviceLost) ImplementsEvent() {}

// SceneFuncs adapts a plain constructor that cannot fail.
func SceneFuncs[A any, S Scene](newScene func(dev gpu.Device, args A) S) SceneFunc[A] {
	return func(dev gpu.Device, args A) (Scene, error) {
		return newScene(dev, args), nil
	}
}
