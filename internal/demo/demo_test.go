// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package demo

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func near(a, b float32) bool { return math.Abs(float64(a-b)) < eps }

func TestTriangleIdentity(t *testing.T) {
	got := Triangle(Transform(0, 100, 100))
	for i, v := range got {
		if !near(v.Pos[0], baseTriangle[i].Pos[0]) || !near(v.Pos[1], baseTriangle[i].Pos[1]) {
			t.Errorf("vertex %d = %v, want %v", i, v.Pos, baseTriangle[i].Pos)
		}
		if v.Color != baseTriangle[i].Color {
			t.Errorf("vertex %d color = %v", i, v.Color)
		}
	}
}

func TestTriangleRotation(t *testing.T) {
	got := Triangle(Transform(math.Pi/2, 1, 1))
	// (0, 0.6) rotated a quarter turn counter-clockwise.
	if !near(got[0].Pos[0], -0.6) || !near(got[0].Pos[1], 0) {
		t.Errorf("top vertex = %v, want [-0.6 0]", got[0].Pos)
	}
}

func TestTriangleAspect(t *testing.T) {
	got := Triangle(Transform(0, 200, 100))
	if !near(got[2].Pos[0], 0.26) || !near(got[2].Pos[1], -0.3) {
		t.Errorf("right vertex = %v, want [0.26 -0.3]", got[2].Pos)
	}
	if m := Transform(0, 0, 0); !m.ApproxEqual(mgl32.Ident4()) {
		t.Errorf("Transform(0, 0x0) = %v, want identity", m)
	}
}

func TestBytes(t *testing.T) {
	verts := []Vertex{{Pos: [2]float32{1, -2}, Color: [3]float32{0.5, 0.25, 0}}}
	b := Bytes(verts)
	if len(b) != VertexStride {
		t.Fatalf("len = %d, want %d", len(b), VertexStride)
	}
	floatAt := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
	}
	if floatAt(0) != 1 || floatAt(4) != -2 {
		t.Errorf("position = %v %v", floatAt(0), floatAt(4))
	}
	if floatAt(ColorOffset) != 0.5 || floatAt(ColorOffset+4) != 0.25 {
		t.Errorf("color = %v %v", floatAt(ColorOffset), floatAt(ColorOffset+4))
	}
}

func TestSpinner(t *testing.T) {
	s := Spinner{Speed: math.Pi}
	if got := s.Advance(500 * time.Millisecond); !near(got, math.Pi/2) {
		t.Errorf("Advance(0.5s) = %v, want π/2", got)
	}
	s.Advance(2 * time.Second)
	if !near(s.Angle(), math.Pi/2) {
		t.Errorf("angle after full turn = %v, want π/2", s.Angle())
	}

	back := Spinner{Speed: -math.Pi}
	if got := back.Advance(500 * time.Millisecond); !near(got, 3*math.Pi/2) {
		t.Errorf("negative Advance = %v, want 3π/2", got)
	}
}
