// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/harness"
	"github.com/gogpu/harness/gpu"
)

// submitTimeout bounds the wait for each submission to complete.
const (
	submitTimeout = 5 * time.Second
	pollInterval  = 100 * time.Microsecond
)

// Context is an offscreen graphics context on a HAL device.
//
// Submissions are serialized: Submit returns once the queue reports the
// command buffer complete, so frame textures can be reused
// and read back without further synchronization.
type Context struct {
	backend  *Backend
	instance hal.Instance
	adapter  hal.Adapter
	device   hal.Device
	queue    hal.Queue
	info     gpu.AdapterInfo
	devType  gputypes.DeviceType
	log      *slog.Logger

	chain    *swapchain
	last     *image.RGBA
	released bool
}

func newContext(b *Backend, instance hal.Instance, exposed *hal.ExposedAdapter, device hal.Device, queue hal.Queue, label string) *Context {
	name := exposed.Info.Name
	if label != "" {
		name = label + " (" + name + ")"
	}
	return &Context{
		backend:  b,
		instance: instance,
		adapter:  exposed.Adapter,
		device:   device,
		queue:    queue,
		info:     gpu.AdapterInfo{Name: name, Backend: b.name},
		devType:  exposed.Info.DeviceType,
		log:      harness.Logger(),
	}
}

// deviceHandle exposes the HAL device through gpucontext.Device.
// Destroy is a no-op; the Context owns the device.
type deviceHandle struct {
	raw hal.Device
}

func (deviceHandle) Poll(bool) {}
func (deviceHandle) Destroy()  {}

// Device implements gpucontext.DeviceProvider.
func (c *Context) Device() gpucontext.Device { return deviceHandle{raw: c.device} }

// Queue implements gpucontext.DeviceProvider.
func (c *Context) Queue() gpucontext.Queue { return c.queue }

// Adapter implements gpucontext.DeviceProvider.
func (c *Context) Adapter() gpucontext.Adapter { return c.adapter }

// AdapterInfo implements gpucontext.DeviceProvider.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: c.info.Name, Type: adapterType(c.devType)}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// SurfaceFormat implements gpucontext.DeviceProvider.
func (c *Context) SurfaceFormat() gputypes.TextureFormat { return gpu.SwapchainFormat }

// HalDevice returns the hal.Device, for accelerators that share it.
func (c *Context) HalDevice() any { return c.device }

// HalQueue returns the hal.Queue, for accelerators that share it.
func (c *Context) HalQueue() any { return c.queue }

// Backend returns the registry name of the backend.
func (c *Context) Backend() string { return c.backend.name }

// Info describes the adapter.
func (c *Context) Info() gpu.AdapterInfo { return c.info }

// NativeDevice returns the hal.Device.
func (c *Context) NativeDevice() any { return c.device }

// NativeQueue returns the hal.Queue.
func (c *Context) NativeQueue() any { return c.queue }

// CreateSwapchain allocates a ring of offscreen color targets.
func (c *Context) CreateSwapchain(cfg gpu.SwapchainConfig) (gpu.Swapchain, error) {
	if c.released {
		return nil, gpu.ErrReleased
	}
	if c.chain != nil && !c.chain.released {
		return nil, errors.New("native: previous swapchain still live")
	}
	s, err := newSwapchain(c, cfg)
	if err != nil {
		return nil, err
	}
	c.chain = s
	return s, nil
}

// CreateCommandEncoder begins a HAL command encoding.
func (c *Context) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	if c.released {
		return nil, gpu.ErrReleased
	}
	raw, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := raw.BeginEncoding(label); err != nil {
		raw.Destroy()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return &commandEncoder{raw: raw}, nil
}

// Submit submits cmd and waits for it to complete.
func (c *Context) Submit(cmd gpu.CommandBuffer) error {
	if c.released {
		return gpu.ErrReleased
	}
	cb, ok := cmd.(*commandBuffer)
	if !ok {
		return fmt.Errorf("native: foreign command buffer %T", cmd)
	}
	return c.submitAndWait(cb)
}

// submitAndWait submits cb, polls the queue until it completes and frees
// it. A buffer that timed out may still be in flight and is not freed.
func (c *Context) submitAndWait(cb *commandBuffer) error {
	err := c.submitAndPoll(cb.raw)
	if errors.Is(err, gpu.ErrFrameTimeout) {
		c.log.Warn("native: command buffer still in flight, not freed", "error", err)
		return err
	}
	cb.release(c.device)
	return err
}

func (c *Context) submitAndPoll(raw hal.CommandBuffer) error {
	idx, err := c.queue.Submit([]hal.CommandBuffer{raw})
	if err != nil {
		if errors.Is(err, hal.ErrDeviceLost) {
			return fmt.Errorf("%w: submit: %w", gpu.ErrDeviceLost, err)
		}
		return fmt.Errorf("submit: %w", err)
	}
	deadline := time.Now().Add(submitTimeout)
	for c.queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: GPU did not finish within %s", gpu.ErrFrameTimeout, submitTimeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// Snapshot returns a copy of the last presented frame.
func (c *Context) Snapshot() (*image.RGBA, error) {
	if c.last == nil {
		return nil, gpu.ErrNoSnapshot
	}
	img := image.NewRGBA(c.last.Rect)
	copy(img.Pix, c.last.Pix)
	return img, nil
}

// Release destroys the swapchain, the device and the instance.
// It is safe to call more than once.
func (c *Context) Release() {
	if c.released {
		return
	}
	if c.chain != nil {
		c.chain.Release()
	}
	if err := c.device.WaitIdle(); err != nil {
		c.log.Warn("native: wait idle before release", "error", err)
	}
	c.device.Destroy()
	c.instance.Destroy()
	c.released = true
	c.log.Debug("native: context released", "backend", c.backend.name)
}

var (
	_ gpu.Context     = (*Context)(nil)
	_ gpu.Snapshotter = (*Context)(nil)
)

var _ gpu.Context = (*Context)(nil)
