// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build stress

package harness

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/gpu/gputest"
)

// TestStressRandomResizes drives many frames with bursts of resizes and
// checks that every frame drew at the latest window size, one swapchain
// was built per resized iteration and only one was ever live.
func TestStressRandomResizes(t *testing.T) {
	f := newFixture(t, 640, 480, 1)
	rng := rand.New(rand.NewPCG(1, 2))

	const iterations = 5000
	resized := 0
	for i := range iterations {
		burst := 0
		if rng.IntN(4) == 0 {
			burst = 1 + rng.IntN(5)
		}
		for range burst {
			f.win.Resize(1+rng.IntN(2048), 1+rng.IntN(2048))
		}
		if burst > 0 {
			resized++
		}
		if rng.IntN(50) == 0 {
			f.b.FailAcquire(gpu.ErrSurfaceOutdated)
			resized++
		}

		if !f.step(t) {
			t.Fatalf("iteration %d: loop ended", i)
		}
		if live := f.b.LiveSwapchains(); live != 1 {
			t.Fatalf("iteration %d: %d live swapchains", i, live)
		}
		w, h := f.win.FramebufferSize()
		last := f.scene.draws[len(f.scene.draws)-1]
		if last != gpu.SizeOf(w, h) {
			t.Fatalf("iteration %d: drew %v, window is %dx%d", i, last, w, h)
		}
	}

	if len(f.scene.draws) != iterations {
		t.Errorf("draws = %d, want %d", len(f.scene.draws), iterations)
	}
	if got, want := f.chain.Builds(), 1+resized; got != want {
		t.Errorf("Builds() = %d, want %d", got, want)
	}
	if got := f.b.Count(gputest.EntryAcquireFailed); got == 0 {
		t.Error("no acquisition failures were injected")
	}
}

// TestStressManyEvents floods the window with events between frames.
func TestStressManyEvents(t *testing.T) {
	f := newFixture(t, 320, 240, 0)
	const perFrame = 1000
	for range 100 {
		for i := range perFrame {
			f.win.Resize(320+i%2, 240)
		}
		f.step(t)
	}
	if got := f.chain.Builds(); got != 101 {
		t.Errorf("Builds() = %d, want 101", got)
	}
	if got := len(f.scene.events); got != 100*perFrame {
		t.Errorf("events delivered = %d, want %d", got, 100*perFrame)
	}
}
