// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/harness/gpu"
)

// ErrForeignHandle is returned when a handle from another backend is
// passed to one of the accessors below.
var ErrForeignHandle = errors.New("native: handle not created by the native backend")

type commandEncoder struct {
	raw  hal.CommandEncoder
	done bool
}

func (e *commandEncoder) Finish() (gpu.CommandBuffer, error) {
	if e.done {
		return nil, errors.New("native: encoder already finished")
	}
	e.done = true
	raw, err := e.raw.EndEncoding()
	if err != nil {
		e.raw.DiscardEncoding()
		e.raw.Destroy()
		return nil, err
	}
	return &commandBuffer{raw: raw, enc: e.raw}, nil
}

func (e *commandEncoder) Discard() {
	if e.done {
		return
	}
	e.done = true
	e.raw.DiscardEncoding()
	e.raw.Destroy()
}

func (e *commandEncoder) Native() any { return e.raw }

// commandBuffer keeps its encoder alive until the GPU is done with both.
type commandBuffer struct {
	raw hal.CommandBuffer
	enc hal.CommandEncoder
}

func (b *commandBuffer) release(dev hal.Device) {
	dev.FreeCommandBuffer(b.raw)
	b.enc.Destroy()
}

func (b *commandBuffer) Native() any { return b.raw }

type textureView struct {
	raw    hal.TextureView
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

func (v *textureView) Width() uint32                  { return v.width }
func (v *textureView) Height() uint32                 { return v.height }
func (v *textureView) Format() gputypes.TextureFormat { return v.format }
func (v *textureView) Native() any                    { return v.raw }

// Device returns the hal.Device behind dev.
func Device(dev gpu.Device) (hal.Device, error) {
	d, ok := dev.NativeDevice().(hal.Device)
	if !ok {
		return nil, ErrForeignHandle
	}
	return d, nil
}

// Queue returns the hal.Queue behind dev.
func Queue(dev gpu.Device) (hal.Queue, error) {
	q, ok := dev.NativeQueue().(hal.Queue)
	if !ok {
		return nil, ErrForeignHandle
	}
	return q, nil
}

// Encoder returns the hal.CommandEncoder to record into.
func Encoder(enc gpu.CommandEncoder) (hal.CommandEncoder, error) {
	e, ok := enc.(*commandEncoder)
	if !ok {
		return nil, ErrForeignHandle
	}
	return e.raw, nil
}

// View returns the hal.TextureView of a frame target.
func View(v gpu.TextureView) (hal.TextureView, error) {
	tv, ok := v.(*textureView)
	if !ok {
		return nil, ErrForeignHandle
	}
	return tv.raw, nil
}

// BeginClearPass opens a render pass on enc that clears target to clear.
// The caller records its draws and must End the pass before Draw returns.
func BeginClearPass(enc gpu.CommandEncoder, target gpu.TextureView, clear gputypes.Color) (hal.RenderPassEncoder, error) {
	e, err := Encoder(enc)
	if err != nil {
		return nil, err
	}
	view, err := View(target)
	if err != nil {
		return nil, err
	}
	return e.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "clear_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	}), nil
}
