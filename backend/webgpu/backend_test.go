// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/gpu/gputest"
	"github.com/gogpu/harness/window"
)

func TestRegistered(t *testing.T) {
	b := gpu.Get(Name)
	if b == nil {
		t.Fatalf("backend %q not registered", Name)
	}
	if b.Name() != Name {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestOpenRejectsHeadless(t *testing.T) {
	win := window.NewHeadless(window.Options{Title: "t", Width: 8, Height: 8})
	_, err := Backend{}.Open(t.Context(), win, gpu.DeviceOptions{})
	if !errors.Is(err, gpu.ErrUnsupportedWindow) {
		t.Errorf("Open(headless) error = %v, want ErrUnsupportedWindow", err)
	}
}

func TestOpenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := Backend{}.Open(ctx, nil, gpu.DeviceOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Open(canceled) error = %v", err)
	}
}

func TestClassifyAcquire(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"wgpu.(*SwapChain).GetCurrentTextureView(): Outdated", gpu.ErrSurfaceOutdated},
		{"surface Lost", gpu.ErrSurfaceLost},
		{"Timeout", gpu.ErrFrameTimeout},
		{"OutOfMemory", gpu.ErrOutOfMemory},
	}
	for _, tt := range tests {
		err := classifyAcquire(errors.New(tt.msg))
		if !errors.Is(err, tt.want) {
			t.Errorf("classifyAcquire(%q) = %v, want %v", tt.msg, err, tt.want)
		}
	}

	other := errors.New("validation error")
	if got := classifyAcquire(other); got != other {
		t.Errorf("classifyAcquire(other) = %v", got)
	}
	if gpu.IsTransient(classifyAcquire(other)) {
		t.Error("unknown acquisition error classified as transient")
	}
}

func TestLostState(t *testing.T) {
	var l lostState
	if err := l.Err(); err != nil {
		t.Fatalf("Err() before loss = %v", err)
	}

	l.record(wgpu.DeviceLostReason_Undefined, "driver reset")
	l.record(wgpu.DeviceLostReason_Destroyed, "released")

	err := l.Err()
	if !errors.Is(err, gpu.ErrDeviceLost) {
		t.Fatalf("Err() = %v, want ErrDeviceLost", err)
	}
	if gpu.IsTransient(err) {
		t.Error("device loss classified as transient")
	}

	s := &swapchain{lost: &l}
	if _, err := s.Acquire(); !errors.Is(err, gpu.ErrDeviceLost) {
		t.Errorf("Acquire() after loss error = %v, want ErrDeviceLost", err)
	}
}

func TestAdapterType(t *testing.T) {
	types := map[wgpu.AdapterType]gpucontext.AdapterType{
		wgpu.AdapterType_DiscreteGPU:   gpucontext.AdapterTypeDiscrete,
		wgpu.AdapterType_IntegratedGPU: gpucontext.AdapterTypeIntegrated,
		wgpu.AdapterType_CPU:           gpucontext.AdapterTypeSoftware,
		wgpu.AdapterType_Unknown:       gpucontext.AdapterTypeUnknown,
	}
	for in, want := range types {
		if got := adapterType(in); got != want {
			t.Errorf("adapterType(%v) = %v, want %v", in, got, want)
		}
	}

	c := &Context{info: gpu.AdapterInfo{Name: "gpu0"}, kind: gpucontext.AdapterTypeIntegrated}
	if got := c.AdapterInfo(); got.Name != "gpu0" || got.Type != gpucontext.AdapterTypeIntegrated {
		t.Errorf("AdapterInfo() = %+v", got)
	}
}

func TestModeMapping(t *testing.T) {
	modes := map[gpu.PresentMode]wgpu.PresentMode{
		gpu.PresentModeMailbox:   wgpu.PresentMode_Mailbox,
		gpu.PresentModeFifo:      wgpu.PresentMode_Fifo,
		gpu.PresentModeImmediate: wgpu.PresentMode_Immediate,
	}
	for in, want := range modes {
		if got := presentMode(in); got != want {
			t.Errorf("presentMode(%v) = %v, want %v", in, got, want)
		}
	}

	powers := map[gpu.PowerPreference]wgpu.PowerPreference{
		gpu.PowerPreferenceDefault:         wgpu.PowerPreference_Undefined,
		gpu.PowerPreferenceLowPower:        wgpu.PowerPreference_LowPower,
		gpu.PowerPreferenceHighPerformance: wgpu.PowerPreference_HighPerformance,
	}
	for in, want := range powers {
		if got := powerPreference(in); got != want {
			t.Errorf("powerPreference(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestForeignHandles(t *testing.T) {
	fake := gputest.New()
	gctx, err := fake.Open(t.Context(), nil, gpu.DeviceOptions{})
	if err != nil {
		t.Fatal(err)
	}
	defer gctx.Release()

	if _, err := Device(gctx); !errors.Is(err, ErrForeignHandle) {
		t.Errorf("Device(fake) error = %v", err)
	}
	if _, err := Queue(gctx); !errors.Is(err, ErrForeignHandle) {
		t.Errorf("Queue(fake) error = %v", err)
	}
	enc, err := gctx.CreateCommandEncoder("t")
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Discard()
	if _, err := Encoder(enc); !errors.Is(err, ErrForeignHandle) {
		t.Errorf("Encoder(fake) error = %v", err)
	}
}
