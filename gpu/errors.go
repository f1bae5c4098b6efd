// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "errors"

// Context creation errors.
var (
	// ErrNoAdapter is returned when no adapter is compatible with the
	// window's surface.
	ErrNoAdapter = errors.New("gpu: no compatible adapter")

	// ErrNoDevice is returned when the adapter refuses to create a device.
	ErrNoDevice = errors.New("gpu: device request failed")

	// ErrUnsupportedWindow is returned when a backend cannot create a
	// surface for the given window type.
	ErrUnsupportedWindow = errors.New("gpu: window not supported by backend")

	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered.
	ErrBackendNotAvailable = errors.New("gpu: backend not available")
)

// Swapchain and frame errors.
var (
	// ErrInvalidSize is returned when a swapchain is configured with a
	// zero dimension, which happens while a window is minimized.
	ErrInvalidSize = errors.New("gpu: swapchain size must be non-zero")

	// ErrSurfaceOutdated means the surface changed and the swapchain must
	// be rebuilt.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")

	// ErrSurfaceLost means the surface was lost and must be reconfigured.
	ErrSurfaceLost = errors.New("gpu: surface lost")

	// ErrFrameTimeout means no frame became available in time.
	ErrFrameTimeout = errors.New("gpu: frame acquisition timed out")

	// ErrOutOfMemory means the device ran out of memory.
	ErrOutOfMemory = errors.New("gpu: out of memory")

	// ErrDeviceLost means the device is no longer usable.
	ErrDeviceLost = errors.New("gpu: device lost")

	// ErrReleased is returned by operations on a released swapchain or context.
	ErrReleased = errors.New("gpu: resource released")

	// ErrNoSnapshot is returned by Snapshot before a frame was captured.
	ErrNoSnapshot = errors.New("gpu: no frame captured")
)

// IsTransient reports whether err is a frame acquisition failure that a
// swapchain rebuild may cure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrSurfaceOutdated) ||
		errors.Is(err, ErrSurfaceLost) ||
		errors.Is(err, ErrFrameTimeout)
}
