// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileWGSL compiles WGSL source to SPIR-V words. Results are cached by
// source; callers must not modify the returned slice.
func CompileWGSL(src string) ([]uint32, error) {
	return shaderCache.getOrCompile(src, compileWGSL)
}

func compileWGSL(src string) ([]uint32, error) {
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not a multiple of 4", len(spirv))
	}
	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}

// CreateShaderModule compiles src and creates a shader module from the
// resulting SPIR-V.
func CreateShaderModule(dev hal.Device, label, src string) (hal.ShaderModule, error) {
	words, err := CompileWGSL(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: words},
	})
}
