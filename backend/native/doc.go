// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements offscreen harness backends on the gogpu/wgpu
// hardware abstraction layer.
//
// Importing the package registers two backends:
//
//   - "vulkan" opens a Vulkan device
//   - "noop" opens the HAL no-op device, which needs no GPU and is used
//     in tests and CI
//
// Neither presents to the screen. The swapchain is a ring of color
// textures; each presented frame is copied back to the CPU and the last
// one is available from Context.Snapshot (see harness.Config.Snapshot).
//
// Scenes record through the HAL types:
//
//	func (s *Scene) Draw(enc gpu.CommandEncoder, target gpu.TextureView) error {
//	    rp, err := native.BeginClearPass(enc, target, gputypes.Color{A: 1})
//	    if err != nil {
//	        return err
//	    }
//	    rp.SetPipeline(s.pipeline)
//	    rp.Draw(3, 1, 0, 0)
//	    rp.End()
//	    return nil
//	}
package native
