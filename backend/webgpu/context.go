// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"github.com/gogpu/harness/gpu"
)

// Context owns the wgpu instance, surface, adapter and device.
type Context struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	info     gpu.AdapterInfo
	kind     gpucontext.AdapterType
	lost     *lostState
	log      *slog.Logger

	chain    *swapchain
	released bool
}

type deviceHandle struct {
	raw *wgpu.Device
}

func (d deviceHandle) Poll(wait bool) { d.raw.Poll(wait, nil) }

// Destroy is a no-op; the Context owns the device.
func (deviceHandle) Destroy() {}

// Device implements gpucontext.DeviceProvider.
func (c *Context) Device() gpucontext.Device { return deviceHandle{raw: c.device} }

// Queue implements gpucontext.DeviceProvider.
func (c *Context) Queue() gpucontext.Queue { return c.queue }

// Adapter implements gpucontext.DeviceProvider.
func (c *Context) Adapter() gpucontext.Adapter { return c.adapter }

// AdapterInfo implements gpucontext.DeviceProvider.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: c.info.Name, Type: c.kind}
}

// SurfaceFormat implements gpucontext.DeviceProvider.
func (c *Context) SurfaceFormat() gputypes.TextureFormat { return gpu.SwapchainFormat }

func (c *Context) Backend() string       { return Name }
func (c *Context) Info() gpu.AdapterInfo { return c.info }
func (c *Context) NativeDevice() any     { return c.device }
func (c *Context) NativeQueue() any      { return c.queue }

// CreateSwapchain configures the window surface.
func (c *Context) CreateSwapchain(cfg gpu.SwapchainConfig) (gpu.Swapchain, error) {
	if c.released {
		return nil, gpu.ErrReleased
	}
	if c.chain != nil && !c.chain.released {
		return nil, errors.New("webgpu: previous swapchain still live")
	}
	if cfg.Format != gpu.SwapchainFormat {
		return nil, fmt.Errorf("webgpu: unsupported swapchain format %v", cfg.Format)
	}
	raw, err := c.device.CreateSwapChain(c.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      wgpu.TextureFormat_BGRA8UnormSrgb,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: presentMode(cfg.PresentMode),
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create swapchain: %w", err)
	}
	c.chain = &swapchain{raw: raw, cfg: cfg, lost: c.lost}
	return c.chain, nil
}

// CreateCommandEncoder creates a wgpu command encoder.
func (c *Context) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	if c.released {
		return nil, gpu.ErrReleased
	}
	raw, err := c.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create command encoder: %w", err)
	}
	return &commandEncoder{raw: raw}, nil
}

// Submit queues cmd and releases it.
func (c *Context) Submit(cmd gpu.CommandBuffer) error {
	if c.released {
		return gpu.ErrReleased
	}
	cb, ok := cmd.(*commandBuffer)
	if !ok {
		return fmt.Errorf("webgpu: foreign command buffer %T", cmd)
	}
	defer cb.raw.Release()
	if err := c.lost.Err(); err != nil {
		return err
	}
	c.queue.Submit(cb.raw)
	return nil
}

// Release destroys everything in reverse creation order. It is safe to
// call more than once.
func (c *Context) Release() {
	if c.released {
		return
	}
	if c.chain != nil {
		c.chain.Release()
	}
	c.queue.Release()
	c.device.Release()
	c.adapter.Release()
	c.surface.Release()
	c.instance.Release()
	c.released = true
	c.log.Debug("webgpu: context released")
}

// lostState records the device-lost notification from wgpu-native. The
// callback may run on a driver thread.
type lostState struct {
	mu  sync.Mutex
	err error
}

func (l *lostState) record(reason wgpu.DeviceLostReason, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err == nil {
		l.err = fmt.Errorf("%w: %s: %s", gpu.ErrDeviceLost, reason, msg)
	}
}

// Err returns a gpu.ErrDeviceLost error once the device is gone.
func (l *lostState) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// classifyAcquire maps wgpu-native surface texture statuses onto the
// acquisition sentinels. wgpu-native reports them only as text.
func classifyAcquire(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %w", gpu.ErrSurfaceOutdated, err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %w", gpu.ErrSurfaceLost, err)
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %w", gpu.ErrFrameTimeout, err)
	case strings.Contains(msg, "outofmemory"), strings.Contains(msg, "out of memory"):
		return fmt.Errorf("%w: %w", gpu.ErrOutOfMemory, err)
	}
	return err
}

var _ gpu.Context = (*Context)(nil)
