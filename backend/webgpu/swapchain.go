// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"github.com/gogpu/harness/gpu"
)

// ErrForeignHandle is returned when a handle from another backend is
// passed to one of the accessors below.
var ErrForeignHandle = errors.New("webgpu: handle not created by the webgpu backend")

type swapchain struct {
	raw      *wgpu.SwapChain
	cfg      gpu.SwapchainConfig
	lost     *lostState
	released bool
}

func (s *swapchain) Config() gpu.SwapchainConfig { return s.cfg }

func (s *swapchain) Acquire() (gpu.Frame, error) {
	if s.released {
		return nil, gpu.ErrReleased
	}
	if err := s.lost.Err(); err != nil {
		return nil, err
	}
	view, err := s.raw.GetCurrentTextureView()
	if err != nil {
		return nil, classifyAcquire(err)
	}
	return &frame{
		chain: s,
		view:  &textureView{raw: view, width: s.cfg.Width, height: s.cfg.Height, format: s.cfg.Format},
	}, nil
}

func (s *swapchain) Release() {
	if s.released {
		return
	}
	s.raw.Release()
	s.released = true
}

type frame struct {
	chain     *swapchain
	view      *textureView
	presented bool
	done      bool
}

func (f *frame) View() gpu.TextureView { return f.view }

func (f *frame) Present() error {
	if f.presented {
		return nil
	}
	if f.chain.released {
		return gpu.ErrSurfaceOutdated
	}
	f.presented = true
	f.chain.raw.Present()
	return nil
}

func (f *frame) Release() {
	if f.done {
		return
	}
	f.done = true
	f.view.raw.Release()
}

type textureView struct {
	raw    *wgpu.TextureView
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

func (v *textureView) Width() uint32                  { return v.width }
func (v *textureView) Height() uint32                 { return v.height }
func (v *textureView) Format() gputypes.TextureFormat { return v.format }
func (v *textureView) Native() any                    { return v.raw }

type commandEncoder struct {
	raw  *wgpu.CommandEncoder
	done bool
}

func (e *commandEncoder) Finish() (gpu.CommandBuffer, error) {
	if e.done {
		return nil, errors.New("webgpu: encoder already finished")
	}
	e.done = true
	defer e.raw.Release()
	raw, err := e.raw.Finish(nil)
	if err != nil {
		return nil, err
	}
	return &commandBuffer{raw: raw}, nil
}

func (e *commandEncoder) Discard() {
	if e.done {
		return
	}
	e.done = true
	e.raw.Release()
}

func (e *commandEncoder) Native() any { return e.raw }

type commandBuffer struct {
	raw *wgpu.CommandBuffer
}

func (b *commandBuffer) Native() any { return b.raw }

// Device returns the wgpu device behind dev.
func Device(dev gpu.Device) (*wgpu.Device, error) {
	d, ok := dev.NativeDevice().(*wgpu.Device)
	if !ok {
		return nil, ErrForeignHandle
	}
	return d, nil
}

// Queue returns the wgpu queue behind dev.
func Queue(dev gpu.Device) (*wgpu.Queue, error) {
	q, ok := dev.NativeQueue().(*wgpu.Queue)
	if !ok {
		return nil, ErrForeignHandle
	}
	return q, nil
}

// Encoder returns the wgpu command encoder to record into.
func Encoder(enc gpu.CommandEncoder) (*wgpu.CommandEncoder, error) {
	e, ok := enc.(*commandEncoder)
	if !ok {
		return nil, ErrForeignHandle
	}
	return e.raw, nil
}

// View returns the wgpu texture view of a frame target.
func View(v gpu.TextureView) (*wgpu.TextureView, error) {
	tv, ok := v.(*textureView)
	if !ok {
		return nil, ErrForeignHandle
	}
	return tv.raw, nil
}

// BeginClearPass opens a render pass on enc that clears target to clear.
// The caller must End the pass before Draw returns.
func BeginClearPass(enc gpu.CommandEncoder, target gpu.TextureView, clear wgpu.Color) (*wgpu.RenderPassEncoder, error) {
	e, err := Encoder(enc)
	if err != nil {
		return nil, err
	}
	view, err := View(target)
	if err != nil {
		return nil, err
	}
	return e.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: clear,
		}},
	}), nil
}
