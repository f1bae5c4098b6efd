// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package harness

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/window"
)

// frameLabel labels the command encoder of every frame.
const frameLabel = "harness_frame"

// Driver is the event loop. Each Step delivers the window's pending events
// and then, once they are exhausted, produces one frame.
//
// Resize events only mark the swapchain stale; the rebuild happens once per
// frame, at the start of the drain phase, with the size sampled then. Any
// number of resizes between two frames therefore cost one rebuild.
//
// Driver is not safe for concurrent use.
type Driver struct {
	win     window.Window
	gctx    gpu.Context
	chain   *gpu.SwapchainManager
	scene   Scene
	handler EventHandler
	retries int
	log     *slog.Logger

	dirty  bool
	closed bool
	frames uint64
	events []window.Event
}

// NewDriver returns a driver for an initialized context, swapchain and
// scene. retries bounds the swapchain rebuilds attempted when frame
// acquisition fails transiently.
func NewDriver(win window.Window, gctx gpu.Context, chain *gpu.SwapchainManager, scene Scene, retries int) *Driver {
	d := &Driver{
		win:     win,
		gctx:    gctx,
		chain:   chain,
		scene:   scene,
		retries: max(retries, 0),
		log:     Logger(),
	}
	d.handler, _ = scene.(EventHandler)
	return d
}

// Frames returns the number of frames submitted and presented.
func (d *Driver) Frames() uint64 { return d.frames }

// Closed reports whether a close request ended the loop.
func (d *Driver) Closed() bool { return d.closed }

// Run steps the loop until the window asks to close, a frame fails, or ctx
// is done. A close request returns nil.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := d.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Step runs one loop iteration. It reports false once a close request has
// been seen; no frame is acquired and no further event is delivered after
// that.
func (d *Driver) Step() (bool, error) {
	if d.closed {
		return false, nil
	}

	d.events = d.win.PollEvents(d.events[:0])
	for _, ev := range d.events {
		d.dispatch(ev)
		if d.closed {
			break
		}
	}
	clear(d.events)

	if d.closed {
		d.log.Info("close requested", "frames", d.frames)
		return false, nil
	}
	return true, d.drawFrame()
}

func (d *Driver) dispatch(ev window.Event) {
	if d.handler != nil {
		d.handler.HandleEvent(ev)
	}
	switch ev.(type) {
	case window.Resized:
		d.dirty = true
	case window.CloseRequested:
		d.closed = true
	}
}

func (d *Driver) drawFrame() error {
	if d.dirty {
		size := gpu.SizeOf(d.win.FramebufferSize())
		if size.Empty() {
			// Minimized. Keep the rebuild pending until the window has an area.
			d.log.Debug("skipping frame for empty framebuffer")
			return nil
		}
		if err := d.chain.Rebuild(size); err != nil {
			return d.fail(StageRebuild, err)
		}
		d.dirty = false
	}

	frame, err := d.acquire()
	if err != nil || frame == nil {
		return err
	}
	defer frame.Release()

	enc, err := d.gctx.CreateCommandEncoder(frameLabel)
	if err != nil {
		return d.fail(StageEncode, err)
	}
	if err := d.scene.Draw(enc, frame.View()); err != nil {
		enc.Discard()
		return d.fail(StageDraw, err)
	}
	cmd, err := enc.Finish()
	if err != nil {
		return d.fail(StageEncode, err)
	}
	if err := d.gctx.Submit(cmd); err != nil {
		return d.fail(StageSubmit, err)
	}
	if err := frame.Present(); err != nil {
		return d.fail(StagePresent, err)
	}
	d.frames++
	return nil
}

// acquire gets the next frame, rebuilding the swapchain after transient
// failures up to the retry budget.
// acquire returns a nil frame and nil error when the window was minimized
// during a retry; the rebuild is left pending for a later Step.
func (d *Driver) acquire() (gpu.Frame, error) {
	for attempt := 0; ; attempt++ {
		frame, err := d.chain.Acquire()
		if err == nil {
			return frame, nil
		}
		if !gpu.IsTransient(err) || attempt >= d.retries {
			return nil, d.fail(StageAcquire, err)
		}

		size := gpu.SizeOf(d.win.FramebufferSize())
		if size.Empty() {
			d.log.Debug("skipping frame, framebuffer emptied during acquisition", "error", err)
			d.dirty = true
			return nil, nil
		}
		d.log.Warn("frame acquisition failed, rebuilding swapchain",
			"error", err, "attempt", attempt+1)
		if err := d.chain.Rebuild(size); err != nil {
			return nil, d.fail(StageRebuild, err)
		}
	}
}

// fail wraps err for the current frame. A lost device is reported to the
// scene first, whichever stage saw it.
func (d *Driver) fail(stage Stage, err error) error {
	if errors.Is(err, gpu.ErrDeviceLost) && d.handler != nil {
		d.handler.HandleEvent(DeviceLost{Err: err})
	}
	return &FrameError{Frame: d.frames, Stage: stage, Err: err}
}
