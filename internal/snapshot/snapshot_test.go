// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 200, A: 255})
		}
	}
	return img
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", PNG, false},
		{"dir/OUT.PNG", PNG, false},
		{"frame.bmp", BMP, false},
		{"frame.jpg", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatOf(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatOf(%q) error = %v, want ErrUnknownFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	src := testImage()
	if err := Save(path, src); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
	}
	r, g, b, a := got.At(2, 1).RGBA()
	wr, wg, wb, wa := src.At(2, 1).RGBA()
	if r != wr || g != wg || b != wb || a != wa {
		t.Errorf("pixel (2,1) = %v, want %v", got.At(2, 1), src.At(2, 1))
	}
}

func TestEncodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), BMP); err != nil {
		t.Fatalf("Encode(BMP) error = %v", err)
	}
	cfg, err := bmp.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("bmp.DecodeConfig() error = %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 3 {
		t.Errorf("bmp size = %dx%d, want 4x3", cfg.Width, cfg.Height)
	}
}

func TestSaveUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.gif")
	if err := Save(path, testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Save() error = %v, want ErrUnknownFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Save() created %s for unknown format", path)
	}
}
