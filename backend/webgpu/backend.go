// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webgpu is the windowed backend: wgpu-native through
// rajveermalviya/go-webgpu, presenting to a GLFW window.
//
// Importing the package registers the backend as "webgpu". It accepts only
// windows from the desktop package (or anything exposing a *glfw.Window via
// a GLFW method); other windows fail with gpu.ErrUnsupportedWindow.
package webgpu

import (
	"context"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"github.com/gogpu/harness"
	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/window"
)

// Name is the registry name.
const Name = "webgpu"

func init() {
	gpu.Register(Name, func() gpu.Backend { return Backend{} })
}

// glfwWindow is implemented by windows that can host a surface.
type glfwWindow interface {
	GLFW() *glfw.Window
}

// Backend opens wgpu-native contexts.
type Backend struct{}

// Name returns the registry name.
func (Backend) Name() string { return Name }

// Open creates an instance and a surface for win, requests an adapter
// compatible with the surface and opens a device with default limits.
func (Backend) Open(ctx context.Context, win window.Window, opts gpu.DeviceOptions) (gpu.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gw, ok := win.(glfwWindow)
	if !ok {
		return nil, fmt.Errorf("%w: %T", gpu.ErrUnsupportedWindow, win)
	}

	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(surfaceDescriptor(gw.GLFW()))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    surface,
		PowerPreference:      powerPreference(opts.PowerPreference),
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	})
	if err != nil {
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: %w", gpu.ErrNoAdapter, err)
	}

	lost := &lostState{}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:              opts.Label,
		DeviceLostCallback: lost.record,
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: %w", gpu.ErrNoDevice, err)
	}

	props := adapter.GetProperties()
	c := &Context{
		instance: instance,
		surface:  surface,
		adapter:  adapter,
		device:   device,
		queue:    device.GetQueue(),
		info:     gpu.AdapterInfo{Name: props.Name, Backend: Name},
		kind:     adapterType(props.AdapterType),
		lost:     lost,
		log:      harness.Logger(),
	}
	if err := ctx.Err(); err != nil {
		c.Release()
		return nil, err
	}

	c.log.Info("webgpu: device opened",
		"adapter", props.Name,
		"power", opts.PowerPreference.String())
	return c, nil
}

func powerPreference(p gpu.PowerPreference) wgpu.PowerPreference {
	switch p {
	case gpu.PowerPreferenceLowPower:
		return wgpu.PowerPreference_LowPower
	case gpu.PowerPreferenceHighPerformance:
		return wgpu.PowerPreference_HighPerformance
	default:
		return wgpu.PowerPreference_Undefined
	}
}

func adapterType(t wgpu.AdapterType) gpucontext.AdapterType {
	switch t {
	case wgpu.AdapterType_DiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case wgpu.AdapterType_IntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case wgpu.AdapterType_CPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

func presentMode(m gpu.PresentMode) wgpu.PresentMode {
	switch m {
	case gpu.PresentModeFifo:
		return wgpu.PresentMode_Fifo
	case gpu.PresentModeImmediate:
		return wgpu.PresentMode_Immediate
	default:
		return wgpu.PresentMode_Mailbox
	}
}

var _ gpu.Backend = Backend{}
