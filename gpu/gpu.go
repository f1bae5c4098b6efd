// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu defines the graphics capabilities the harness needs from a
// GPU backend: a device/queue pair bound to a window surface, a swapchain
// of presentable frames, and command recording and submission.
//
// The harness never looks inside the handles it receives. Backends expose
// their native objects through the Native methods, and scenes written for a
// particular backend unwrap them with that backend's accessors:
//
//	enc := webgpu.Encoder(encoder) // *wgpu.CommandEncoder
//
// Backends register with Register from an init function and are selected
// by name:
//
//	import _ "github.com/gogpu/harness/backend/native" // registers "vulkan" and "noop"
//
//	b := gpu.Get("noop")
package gpu

import (
	"context"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/harness/window"
)

// Backend opens graphics contexts for windows.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// Open selects an adapter compatible with the window's surface and
	// requests a device and queue. It blocks until both are available.
	Open(ctx context.Context, win window.Window, opts DeviceOptions) (Context, error)
}

// Device is the part of a graphics context handed to scenes.
//
// It implements gpucontext.DeviceProvider so that libraries built on the
// gpucontext contract can share the device.
type Device interface {
	gpucontext.DeviceProvider

	// Backend returns the name of the backend that created the device.
	Backend() string

	// Info describes the selected adapter.
	Info() AdapterInfo

	// NativeDevice returns the backend's device object.
	NativeDevice() any

	// NativeQueue returns the backend's queue object.
	NativeQueue() any
}

// Context is a device, a queue and a surface bound to one window.
// The device and queue outlive every resource created through them, so a
// Context is released last.
type Context interface {
	Device

	// CreateSwapchain configures the surface. The previous swapchain, if
	// any, must have been released.
	CreateSwapchain(cfg SwapchainConfig) (Swapchain, error)

	// CreateCommandEncoder starts recording a command buffer.
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Submit hands a finished command buffer to the queue.
	Submit(cmd CommandBuffer) error

	// Release destroys the device and the surface.
	Release()
}

// Swapchain is a rotating set of presentable color targets.
type Swapchain interface {
	// Config returns the configuration the swapchain was built with.
	Config() SwapchainConfig

	// Acquire returns the next frame to render into.
	Acquire() (Frame, error)

	// Release destroys the swapchain. Frames acquired from it become invalid.
	Release()
}

// Frame is one acquired swapchain image.
type Frame interface {
	// View returns the color target to render into.
	View() TextureView

	// Present queues the frame for display. Commands rendering into the
	// view must have been submitted first.
	Present() error

	// Release returns the frame's resources without presenting if Present
	// was not called.
	Release()
}

// TextureView is a render target view.
type TextureView interface {
	Width() uint32
	Height() uint32
	Format() gputypes.TextureFormat
	Native() any
}

// CommandEncoder records GPU commands. Recording itself goes through the
// native encoder; the harness only finishes or discards it.
type CommandEncoder interface {
	// Finish ends recording and returns a submittable command buffer.
	Finish() (CommandBuffer, error)

	// Discard abandons the recording.
	Discard()

	Native() any
}

// CommandBuffer is a finished recording ready for submission.
type CommandBuffer interface {
	Native() any
}

// Snapshotter is implemented by contexts that keep a CPU copy of the last
// presented frame.
type Snapshotter interface {
	// Snapshot returns the last presented frame, or ErrNoSnapshot if none
	// was captured.
	Snapshot() (*image.RGBA, error)
}

// AdapterInfo describes a selected adapter.
type AdapterInfo struct {
	Name    string
	Backend string
}
