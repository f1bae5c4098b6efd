// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework QuartzCore

#import <Cocoa/Cocoa.h>
#import <QuartzCore/CAMetalLayer.h>

static void *attachMetalLayer(void *window) {
	NSWindow *ns = (NSWindow *)window;
	CAMetalLayer *layer = [CAMetalLayer layer];
	[ns.contentView setWantsLayer:YES];
	[ns.contentView setLayer:layer];
	return layer;
}
*/
import "C"

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"
)

// surfaceDescriptor backs the window's content view with a CAMetalLayer.
func surfaceDescriptor(w *glfw.Window) *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{
		MetalLayer: &wgpu.SurfaceDescriptorFromMetalLayer{
			Layer: C.attachMetalLayer(w.GetCocoaWindow()),
		},
	}
}
