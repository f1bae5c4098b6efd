// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gputest provides a recording gpu.Backend for testing code that
// drives the harness without a GPU.
//
// Every call the harness makes is appended to a journal that tests can
// inspect:
//
//	b := gputest.New()
//	// ... run the driver ...
//	if n := b.Count("acquire"); n != 3 { ... }
package gputest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/window"
)

// Journal entry prefixes.
const (
	EntryOpen             = "open"
	EntrySwapchain        = "swapchain"
	EntryReleaseSwapchain = "release-swapchain"
	EntryAcquire          = "acquire"
	EntryAcquireFailed    = "acquire-failed"
	EntryEncoder          = "encoder"
	EntryFinish           = "finish"
	EntryDiscard          = "discard"
	EntrySubmit           = "submit"
	EntryPresent          = "present"
	EntryReleaseFrame     = "release-frame"
	EntryReleaseContext   = "release-context"
)

// Backend is a fake gpu.Backend. The zero value is not usable; call New.
type Backend struct {
	mu sync.Mutex

	// OpenErr, if set, is returned by Open.
	OpenErr error

	// SwapchainErr, if set, is returned by CreateSwapchain.
	SwapchainErr error

	// SubmitErr, if set, is returned by Submit.
	SubmitErr error

	acquireErrs []error
	journal     []string
	swapchains  []gpu.SwapchainConfig
	live        int
	ctx         *Context
}

// New returns an empty fake backend.
func New() *Backend { return &Backend{} }

// Name returns "fake".
func (b *Backend) Name() string { return "fake" }

// Open returns a fake context.
func (b *Backend) Open(ctx context.Context, _ window.Window, opts gpu.DeviceOptions) (gpu.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.OpenErr != nil {
		return nil, b.OpenErr
	}
	b.appendLocked(EntryOpen + " " + opts.PowerPreference.String())
	b.ctx = &Context{b: b}
	return b.ctx, nil
}

// FailAcquire queues errors returned by the next Acquire calls, in order.
// A nil entry lets that call succeed.
func (b *Backend) FailAcquire(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.acquireErrs = append(b.acquireErrs, errs...)
}

// Note appends a caller-defined entry, typically from a test scene, so
// that scene calls are ordered against backend calls.
func (b *Backend) Note(entry string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appendLocked(entry)
}

// Journal returns a copy of all entries in call order.
func (b *Backend) Journal() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.journal...)
}

// Count returns the number of journal entries whose first word is name.
func (b *Backend) Count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.journal {
		if first, _, _ := strings.Cut(e, " "); first == name {
			n++
		}
	}
	return n
}

// Index returns the position of the first entry equal to entry, or -1.
func (b *Backend) Index(entry string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.journal {
		if e == entry {
			return i
		}
	}
	return -1
}

// Swapchains returns the configurations of all swapchains created so far.
func (b *Backend) Swapchains() []gpu.SwapchainConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]gpu.SwapchainConfig(nil), b.swapchains...)
}

// LiveSwapchains returns how many swapchains are created and not released.
func (b *Backend) LiveSwapchains() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}

// Context returns the most recently opened context, or nil.
func (b *Backend) Context() *Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx
}

func (b *Backend) appendLocked(entry string) {
	b.journal = append(b.journal, entry)
}

func (b *Backend) nextAcquireErr() error {
	if len(b.acquireErrs) == 0 {
		return nil
	}
	err := b.acquireErrs[0]
	b.acquireErrs = b.acquireErrs[1:]
	return err
}

// Context is a fake gpu.Context.
type Context struct {
	b        *Backend
	released bool
}

type fakeDevice struct{}

func (fakeDevice) Poll(bool) {}
func (fakeDevice) Destroy()  {}

type fakeQueue struct{}

type fakeAdapter struct{}

var fakeAdapterInfo = gpucontext.AdapterInfo{Name: "fake", Type: gpucontext.AdapterTypeSoftware}

func (c *Context) Device() gpucontext.Device             { return fakeDevice{} }
func (c *Context) Queue() gpucontext.Queue               { return fakeQueue{} }
func (c *Context) Adapter() gpucontext.Adapter           { return fakeAdapter{} }
func (c *Context) AdapterInfo() gpucontext.AdapterInfo   { return fakeAdapterInfo }
func (c *Context) SurfaceFormat() gputypes.TextureFormat { return gpu.SwapchainFormat }
func (c *Context) Backend() string                       { return "fake" }
func (c *Context) Info() gpu.AdapterInfo                 { return gpu.AdapterInfo{Name: "fake", Backend: "fake"} }
func (c *Context) NativeDevice() any                     { return c }
func (c *Context) NativeQueue() any                      { return c }

// Released reports whether Release was called.
func (c *Context) Released() bool {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return c.released
}

// CreateSwapchain records the configuration.
func (c *Context) CreateSwapchain(cfg gpu.SwapchainConfig) (gpu.Swapchain, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.SwapchainErr != nil {
		return nil, c.b.SwapchainErr
	}
	if c.b.live != 0 {
		return nil, fmt.Errorf("gputest: swapchain created while %d still live", c.b.live)
	}
	c.b.live++
	c.b.swapchains = append(c.b.swapchains, cfg)
	c.b.appendLocked(fmt.Sprintf("%s %dx%d", EntrySwapchain, cfg.Width, cfg.Height))
	return &Swapchain{b: c.b, cfg: cfg}, nil
}

// CreateCommandEncoder returns a recording encoder.
func (c *Context) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	c.b.Note(EntryEncoder + " " + label)
	return &Encoder{b: c.b}, nil
}

// Submit records the submission.
func (c *Context) Submit(cmd gpu.CommandBuffer) error {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.SubmitErr != nil {
		return c.b.SubmitErr
	}
	if _, ok := cmd.(*CommandBuffer); !ok {
		return fmt.Errorf("gputest: foreign command buffer %T", cmd)
	}
	c.b.appendLocked(EntrySubmit)
	return nil
}

// Release records the release.
func (c *Context) Release() {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	c.released = true
	c.b.appendLocked(EntryReleaseContext)
}

// Swapchain is a fake gpu.Swapchain.
type Swapchain struct {
	b        *Backend
	cfg      gpu.SwapchainConfig
	released bool
}

func (s *Swapchain) Config() gpu.SwapchainConfig { return s.cfg }

// Acquire returns a frame, or the next queued acquisition error.
func (s *Swapchain) Acquire() (gpu.Frame, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if s.released {
		return nil, gpu.ErrReleased
	}
	if err := s.b.nextAcquireErr(); err != nil {
		s.b.appendLocked(EntryAcquireFailed)
		return nil, err
	}
	s.b.appendLocked(fmt.Sprintf("%s %dx%d", EntryAcquire, s.cfg.Width, s.cfg.Height))
	return &Frame{b: s.b, view: &View{cfg: s.cfg}}, nil
}

// Release records the release.
func (s *Swapchain) Release() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	s.b.live--
	s.b.appendLocked(EntryReleaseSwapchain)
}

// Frame is a fake gpu.Frame.
type Frame struct {
	b    *Backend
	view *View
}

func (f *Frame) View() gpu.TextureView { return f.view }

func (f *Frame) Present() error {
	f.b.Note(EntryPresent)
	return nil
}

func (f *Frame) Release() { f.b.Note(EntryReleaseFrame) }

// View is a fake gpu.TextureView sized like its swapchain.
type View struct {
	cfg gpu.SwapchainConfig
}

func (v *View) Width() uint32                  { return v.cfg.Width }
func (v *View) Height() uint32                 { return v.cfg.Height }
func (v *View) Format() gputypes.TextureFormat { return v.cfg.Format }
func (v *View) Native() any                    { return v }

// Encoder is a fake gpu.CommandEncoder.
type Encoder struct {
	b *Backend
}

func (e *Encoder) Finish() (gpu.CommandBuffer, error) {
	e.b.Note(EntryFinish)
	return &CommandBuffer{}, nil
}

func (e *Encoder) Discard()    { e.b.Note(EntryDiscard) }
func (e *Encoder) Native() any { return e }

// CommandBuffer is a fake gpu.CommandBuffer.
type CommandBuffer struct{}

func (*CommandBuffer) Native() any { return nil }

var (
	_ gpu.Backend = (*Backend)(nil)
	_ gpu.Context = (*Context)(nil)
)
