// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestOpenHeadless(t *testing.T) {
	win, err := Open(PlatformHeadless, Options{Title: "t", Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer win.Close()

	w, h := win.FramebufferSize()
	if w != 800 || h != 600 {
		t.Errorf("FramebufferSize() = %dx%d, want 800x600", w, h)
	}
	if win.Title() != "t" {
		t.Errorf("Title() = %q, want %q", win.Title(), "t")
	}
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		opts     Options
		want     error
	}{
		{"unknown platform", "nope", Options{Width: 1, Height: 1}, ErrUnknownPlatform},
		{"zero width", PlatformHeadless, Options{Width: 0, Height: 1}, ErrInvalidSize},
		{"negative height", PlatformHeadless, Options{Width: 1, Height: -1}, ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.platform, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Open() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterUnregister(t *testing.T) {
	Register("custom", func(opts Options) (Window, error) { return NewHeadless(opts), nil })
	if !slices.Contains(Platforms(), "custom") {
		t.Fatalf("Platforms() = %v, want it to contain custom", Platforms())
	}
	Unregister("custom")
	if slices.Contains(Platforms(), "custom") {
		t.Errorf("Platforms() = %v after Unregister", Platforms())
	}
}

func TestHeadlessEventsDeliveredOnce(t *testing.T) {
	h := NewHeadless(Options{Width: 10, Height: 10})
	h.Inject(Focused{Focused: true})
	h.Resize(20, 30)

	got := h.PollEvents(nil)
	want := []Event{Focused{Focused: true}, Resized{Width: 20, Height: 30}}
	if !slices.Equal(got, want) {
		t.Fatalf("PollEvents() = %v, want %v", got, want)
	}
	if again := h.PollEvents(nil); len(again) != 0 {
		t.Errorf("second PollEvents() = %v, want none", again)
	}
	if w, hh := h.FramebufferSize(); w != 20 || hh != 30 {
		t.Errorf("FramebufferSize() = %dx%d, want 20x30", w, hh)
	}
}

func TestHeadlessFrameLimit(t *testing.T) {
	h := NewHeadless(Options{Width: 1, Height: 1}, WithFrameLimit(2))
	for i := 0; i < 2; i++ {
		if evs := h.PollEvents(nil); len(evs) != 0 {
			t.Fatalf("poll %d = %v, want no events", i, evs)
		}
	}
	evs := h.PollEvents(nil)
	if len(evs) != 1 || evs[0] != (CloseRequested{}) {
		t.Errorf("poll 2 = %v, want [CloseRequested]", evs)
	}
	if h.Polls() != 3 {
		t.Errorf("Polls() = %d, want 3", h.Polls())
	}
}

func TestHeadlessConcurrentClose(t *testing.T) {
	h := NewHeadless(Options{Width: 1, Height: 1})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.RequestClose()
		}()
	}
	wg.Wait()

	if got := len(h.PollEvents(nil)); got != 8 {
		t.Errorf("PollEvents() returned %d events, want 8", got)
	}
}

func TestHeadlessClose(t *testing.T) {
	h := NewHeadless(Options{Width: 1, Height: 1})
	if h.Closed() {
		t.Fatal("Closed() = true before Close")
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if !h.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyA, "a"},
		{KeyZ, "z"},
		{Key0, "0"},
		{Key9, "9"},
		{KeyF1, "f1"},
		{KeyF12, "f12"},
		{KeySpace, "space"},
		{KeyEscape, "escape"},
		{Key(999), "Key(999)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", int(tt.key), got, tt.want)
		}
	}
}

func TestModifiersHas(t *testing.T) {
	m := ModShift | ModCtrl
	if !m.Has(ModShift) || !m.Has(ModCtrl) || !m.Has(ModShift|ModCtrl) {
		t.Errorf("Has() false for set modifiers %b", m)
	}
	if m.Has(ModAlt) {
		t.Errorf("Has(ModAlt) = true for %b", m)
	}
}
