// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import "sync"

// PlatformHeadless is the registry name of the headless platform.
const PlatformHeadless = "headless"

// Headless is a window without an OS counterpart. Events are injected by
// the caller and delivered on the next PollEvents, which makes it suitable
// for offscreen rendering and for driving the event loop in tests.
//
// Injecting methods (Resize, Inject, RequestClose) are safe for concurrent
// use with PollEvents.
type Headless struct {
	mu      sync.Mutex
	title   string
	width   int
	height  int
	pending []Event
	polls   int
	limit   int
	closed  bool
}

// HeadlessOption configures a Headless window.
type HeadlessOption func(*Headless)

// WithFrameLimit makes the window request close on the poll that follows
// the n-th completed poll, so that exactly n iterations draw a frame.
// Zero means no limit.
func WithFrameLimit(n int) HeadlessOption {
	return func(h *Headless) {
		h.limit = n
	}
}

// NewHeadless creates a headless window with the given options.
func NewHeadless(opts Options, hopts ...HeadlessOption) *Headless {
	h := &Headless{
		title:  opts.Title,
		width:  opts.Width,
		height: opts.Height,
	}
	for _, o := range hopts {
		o(h)
	}
	return h
}

// FramebufferSize returns the current size.
func (h *Headless) FramebufferSize() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// PollEvents moves all injected events into buf.
func (h *Headless) PollEvents(buf []Event) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.limit > 0 && h.polls == h.limit {
		h.pending = append(h.pending, CloseRequested{})
	}
	h.polls++

	buf = append(buf, h.pending...)
	h.pending = h.pending[:0]
	return buf
}

// Resize changes the framebuffer size and queues a Resized event.
func (h *Headless) Resize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = width, height
	h.pending = append(h.pending, Resized{Width: width, Height: height})
}

// Inject queues arbitrary events for the next poll.
func (h *Headless) Inject(events ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, events...)
}

// RequestClose queues a CloseRequested event.
func (h *Headless) RequestClose() {
	h.Inject(CloseRequested{})
}

// Polls returns how many times PollEvents has been called.
func (h *Headless) Polls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.polls
}

// Title returns the window title.
func (h *Headless) Title() string { return h.title }

// Close marks the window closed.
func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// Closed reports whether Close was called.
func (h *Headless) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

var _ Window = (*Headless)(nil)
