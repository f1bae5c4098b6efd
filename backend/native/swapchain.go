// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/harness/gpu"
)

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// imageCount returns the ring size for a present mode. Mailbox keeps one
// image in flight, one queued and one being drawn.
func imageCount(mode gpu.PresentMode) int {
	if mode == gpu.PresentModeMailbox {
		return 3
	}
	return 2
}

type target struct {
	tex  hal.Texture
	view hal.TextureView
}

// swapchain is a ring of offscreen textures standing in for a surface.
type swapchain struct {
	ctx      *Context
	cfg      gpu.SwapchainConfig
	targets  []target
	next     int
	released bool
}

func newSwapchain(c *Context, cfg gpu.SwapchainConfig) (*swapchain, error) {
	s := &swapchain{ctx: c, cfg: cfg}
	size := hal.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1}

	for i := range imageCount(cfg.PresentMode) {
		tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
			Label:         fmt.Sprintf("swapchain_image_%d", i),
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        cfg.Format,
			Usage:         cfg.Usage | gputypes.TextureUsageCopySrc,
		})
		if err != nil {
			s.destroyTargets()
			return nil, fmt.Errorf("create swapchain image %d: %w", i, err)
		}
		view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label:         fmt.Sprintf("swapchain_view_%d", i),
			Format:        cfg.Format,
			Dimension:     gputypes.TextureViewDimension2D,
			Aspect:        gputypes.TextureAspectAll,
			MipLevelCount: 1,
		})
		if err != nil {
			c.device.DestroyTexture(tex)
			s.destroyTargets()
			return nil, fmt.Errorf("create swapchain view %d: %w", i, err)
		}
		s.targets = append(s.targets, target{tex: tex, view: view})
	}
	return s, nil
}

func (s *swapchain) Config() gpu.SwapchainConfig { return s.cfg }

// Acquire hands out the ring images in order.
func (s *swapchain) Acquire() (gpu.Frame, error) {
	if s.released || s.ctx.released {
		return nil, gpu.ErrReleased
	}
	t := s.targets[s.next]
	s.next = (s.next + 1) % len(s.targets)
	return &frame{
		chain:  s,
		target: t,
		view:   &textureView{raw: t.view, width: s.cfg.Width, height: s.cfg.Height, format: s.cfg.Format},
	}, nil
}

func (s *swapchain) Release() {
	if s.released {
		return
	}
	s.destroyTargets()
	s.released = true
}

func (s *swapchain) destroyTargets() {
	for _, t := range s.targets {
		s.ctx.device.DestroyTextureView(t.view)
		s.ctx.device.DestroyTexture(t.tex)
	}
	s.targets = nil
}

// frame is one acquired ring image.
type frame struct {
	chain     *swapchain
	target    target
	view      *textureView
	presented bool
}

func (f *frame) View() gpu.TextureView { return f.view }

// Present makes the frame the latest output. With capture enabled the
// image is copied back to the CPU for Snapshot.
func (f *frame) Present() error {
	if f.presented {
		return nil
	}
	if f.chain.released {
		return gpu.ErrSurfaceOutdated
	}
	f.presented = true
	if !f.chain.ctx.backend.capture {
		return nil
	}
	img, err := f.chain.readback(f.target.tex)
	if err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}
	f.chain.ctx.last = img
	return nil
}

func (f *frame) Release() {}

func (s *swapchain) readback(tex hal.Texture) (*image.RGBA, error) {
	c := s.ctx
	w, h := s.cfg.Width, s.cfg.Height

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "swapchain_readback",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer c.device.DestroyBuffer(staging)

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "swapchain_readback"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("swapchain_readback"); err != nil {
		encoder.Destroy()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		encoder.Destroy()
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	if err := c.submitAndWait(&commandBuffer{raw: cmd, enc: encoder}); err != nil {
		return nil, err
	}

	m, err := c.device.MapBuffer(staging, 0, stagingSize)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	defer func() {
		if err := c.device.UnmapBuffer(staging); err != nil {
			c.log.Warn("native: unmap staging buffer", "error", err)
		}
	}()
	if m.Ptr == nil {
		return nil, errors.New("native: staging buffer mapped to nil")
	}
	data := unsafe.Slice((*byte)(m.Ptr), stagingSize)

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := 0; row < int(h); row++ {
		src := data[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		convertBGRAToRGBA(src, dst)
	}
	return img, nil
}

// convertBGRAToRGBA swaps the red and blue channels of a row of pixels.
func convertBGRAToRGBA(src, dst []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
