// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"testing"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/harness/gpu"
)

// trackingDevice records the encoders it hands out and can make
// BeginEncoding fail.
type trackingDevice struct {
	hal.Device
	beginErr error
	encoders []*trackingEncoder
}

func (d *trackingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	raw, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	e := &trackingEncoder{CommandEncoder: raw, beginErr: d.beginErr}
	d.encoders = append(d.encoders, e)
	return e, nil
}

type trackingEncoder struct {
	hal.CommandEncoder
	beginErr  error
	destroyed int
}

func (e *trackingEncoder) BeginEncoding(label string) error {
	if e.beginErr != nil {
		return e.beginErr
	}
	return e.CommandEncoder.BeginEncoding(label)
}

func (e *trackingEncoder) Destroy() {
	e.destroyed++
	e.CommandEncoder.Destroy()
}

func track(t *testing.T, c *Context, beginErr error) *trackingDevice {
	t.Helper()
	d := &trackingDevice{Device: c.device, beginErr: beginErr}
	c.device = d
	return d
}

func assertDestroyedOnce(t *testing.T, d *trackingDevice) {
	t.Helper()
	if len(d.encoders) == 0 {
		t.Fatal("no encoder was created")
	}
	for i, e := range d.encoders {
		if e.destroyed != 1 {
			t.Errorf("encoder %d destroyed %d times, want 1", i, e.destroyed)
		}
	}
}

func TestCreateCommandEncoderBeginFails(t *testing.T) {
	c := openNoop(t)
	errBegin := errors.New("begin failed")
	d := track(t, c, errBegin)

	if _, err := c.CreateCommandEncoder("frame"); !errors.Is(err, errBegin) {
		t.Fatalf("CreateCommandEncoder() error = %v, want %v", err, errBegin)
	}
	assertDestroyedOnce(t, d)
}

func TestReadbackBeginFails(t *testing.T) {
	c := openNoop(t)
	sc, err := c.CreateSwapchain(gpu.Configure(gpu.Size{Width: 8, Height: 8}, gpu.PresentModeFifo))
	if err != nil {
		t.Fatal(err)
	}
	f, err := sc.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	errBegin := errors.New("begin failed")
	d := track(t, c, errBegin)

	if err := f.Present(); !errors.Is(err, errBegin) {
		t.Fatalf("Present() error = %v, want %v", err, errBegin)
	}
	assertDestroyedOnce(t, d)
}

func TestEncoderDestroyedAfterSubmit(t *testing.T) {
	c := openNoop(t)
	sc, err := c.CreateSwapchain(gpu.Configure(gpu.Size{Width: 8, Height: 8}, gpu.PresentModeFifo))
	if err != nil {
		t.Fatal(err)
	}
	f, err := sc.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	d := track(t, c, nil)

	enc, err := c.CreateCommandEncoder("frame")
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := enc.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if d.encoders[0].destroyed != 0 {
		t.Error("encoder destroyed before its command buffer was submitted")
	}
	if err := c.Submit(cmd); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	// Present with capture records a second encoder for the readback.
	if err := f.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if len(d.encoders) != 2 {
		t.Fatalf("encoders created = %d, want 2", len(d.encoders))
	}
	assertDestroyedOnce(t, d)
}

func TestDiscardDestroysEncoder(t *testing.T) {
	c := openNoop(t)
	d := track(t, c, nil)

	enc, err := c.CreateCommandEncoder("discard")
	if err != nil {
		t.Fatal(err)
	}
	enc.Discard()
	enc.Discard()
	assertDestroyedOnce(t, d)
}

type lostQueue struct {
	hal.Queue
}

func (lostQueue) Submit([]hal.CommandBuffer) (uint64, error) { return 0, hal.ErrDeviceLost }

func TestSubmitDeviceLost(t *testing.T) {
	c := openNoop(t)
	d := track(t, c, nil)
	c.queue = lostQueue{Queue: c.queue}

	enc, err := c.CreateCommandEncoder("frame")
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := enc.Finish()
	if err != nil {
		t.Fatal(err)
	}
	err = c.Submit(cmd)
	if !errors.Is(err, gpu.ErrDeviceLost) || !errors.Is(err, hal.ErrDeviceLost) {
		t.Fatalf("Submit() error = %v, want gpu.ErrDeviceLost wrapping hal.ErrDeviceLost", err)
	}
	assertDestroyedOnce(t, d)
}
