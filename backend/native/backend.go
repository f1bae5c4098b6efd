// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/harness"
	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/window"
)

// Registry names.
const (
	NameVulkan = "vulkan"
	NameNoop   = "noop"
)

func init() {
	gpu.Register(NameVulkan, func() gpu.Backend { return New(NameVulkan) })
	gpu.Register(NameNoop, func() gpu.Backend { return New(NameNoop) })
}

// Option configures a Backend.
type Option func(*Backend)

// WithCapture controls whether presented frames are read back to the CPU
// for Snapshot. Capture is on by default; turning it off saves one copy and
// one GPU wait per frame.
func WithCapture(enabled bool) Option {
	return func(b *Backend) {
		b.capture = enabled
	}
}

// Backend opens offscreen HAL contexts.
type Backend struct {
	name    string
	capture bool
}

// New returns the backend registered as name (NameVulkan or NameNoop).
func New(name string, opts ...Option) *Backend {
	b := &Backend{name: name, capture: true}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Name returns the registry name.
func (b *Backend) Name() string { return b.name }

// Open creates a HAL instance, picks an adapter and opens a device with no
// optional features and default limits. The window is only used for its
// framebuffer size; frames are rendered to offscreen textures.
func (b *Backend) Open(ctx context.Context, _ window.Window, opts gpu.DeviceOptions) (gpu.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	instance, err := b.createInstance()
	if err != nil {
		return nil, err
	}

	adapters := instance.EnumerateAdapters(nil)
	selected, err := selectAdapter(adapters, opts)
	if err != nil {
		instance.Destroy()
		return nil, err
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %s: %w", gpu.ErrNoDevice, selected.Info.Name, err)
	}

	c := newContext(b, instance, selected, openDev.Device, openDev.Queue, opts.Label)
	if err := ctx.Err(); err != nil {
		c.Release()
		return nil, err
	}

	harness.Logger().Info("native: device opened",
		"backend", b.name,
		"adapter", selected.Info.Name,
		"power", opts.PowerPreference.String())
	return c, nil
}

func (b *Backend) createInstance() (hal.Instance, error) {
	switch b.name {
	case NameNoop:
		api := noop.API{}
		instance, err := api.CreateInstance(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: noop instance: %w", gpu.ErrNoAdapter, err)
		}
		return instance, nil
	case NameVulkan:
		backend, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("%w: vulkan backend not available", gpu.ErrNoAdapter)
		}
		instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			return nil, fmt.Errorf("%w: create instance: %w", gpu.ErrNoAdapter, err)
		}
		return instance, nil
	}
	return nil, fmt.Errorf("%w: %q", gpu.ErrBackendNotAvailable, b.name)
}

// selectAdapter ranks adapters by the requested power profile. The
// default profile takes the first hardware adapter. A forced fallback
// only accepts adapters that are neither discrete nor integrated GPUs.
func selectAdapter(adapters []hal.ExposedAdapter, opts gpu.DeviceOptions) (*hal.ExposedAdapter, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("%w: no adapters enumerated", gpu.ErrNoAdapter)
	}

	if opts.ForceFallbackAdapter {
		for i := range adapters {
			if !isHardware(adapters[i].Info.DeviceType) {
				return &adapters[i], nil
			}
		}
		return nil, fmt.Errorf("%w: no fallback adapter among %d", gpu.ErrNoAdapter, len(adapters))
	}

	var want gputypes.DeviceType
	switch opts.PowerPreference {
	case gpu.PowerPreferenceHighPerformance:
		want = gputypes.DeviceTypeDiscreteGPU
	case gpu.PowerPreferenceLowPower:
		want = gputypes.DeviceTypeIntegratedGPU
	default:
		for i := range adapters {
			if isHardware(adapters[i].Info.DeviceType) {
				return &adapters[i], nil
			}
		}
		return &adapters[0], nil
	}

	for i := range adapters {
		if adapters[i].Info.DeviceType == want {
			return &adapters[i], nil
		}
	}
	for i := range adapters {
		if isHardware(adapters[i].Info.DeviceType) {
			return &adapters[i], nil
		}
	}
	return &adapters[0], nil
}

func isHardware(t gputypes.DeviceType) bool {
	return t == gputypes.DeviceTypeDiscreteGPU || t == gputypes.DeviceTypeIntegratedGPU
}

var _ gpu.Backend = (*Backend)(nil)
