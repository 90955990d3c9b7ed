package lifehash

import (
	"bytes"
	"crypto/sha256"
	"image/color"
	"testing"
)

// TestGoldenPixels tests fixed pixel values for a fixed input
func TestGoldenPixels(t *testing.T) {
	img := Make([]byte("Hello, world"))

	expected := []struct {
		x, y int
		c    color.RGBA
	}{
		{0, 0, color.RGBA{158, 232, 136, 255}},
		{7, 7, color.RGBA{203, 234, 171, 255}},
		{8, 4, color.RGBA{181, 233, 154, 255}},
		{15, 15, color.RGBA{215, 235, 181, 255}},
	}
	for _, e := range expected {
		if got := img.RGBAAt(e.x, e.y); got != e.c {
			t.Errorf("pixel (%d,%d): expected %v, got %v", e.x, e.y, e.c, got)
		}
	}
}

// TestGoldenPalette tests the gradient endpoints for a fixed input
func TestGoldenPalette(t *testing.T) {
	digest := sha256.Sum256([]byte("Hello, world"))
	a, b := palette(digest)

	if expected := (color.RGBA{217, 235, 182, 255}); a != expected {
		t.Errorf("colorA: expected %v, got %v", expected, a)
	}
	if expected := (color.RGBA{14, 223, 24, 255}); b != expected {
		t.Errorf("colorB: expected %v, got %v", expected, b)
	}
}

// TestDeterminism tests that identical inputs render identical images
func TestDeterminism(t *testing.T) {
	a := Make([]byte("determinism"))
	b := Make([]byte("determinism"))
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Errorf("two renders of the same input differ")
	}
}

// TestSensitivity tests that a one-byte change moves the fingerprint
func TestSensitivity(t *testing.T) {
	a := Make([]byte("Hello, world"))
	b := Make([]byte("Hello, worle"))
	if bytes.Equal(a.Pix, b.Pix) {
		t.Errorf("distinct inputs rendered the same fingerprint")
	}
}

// TestBounds tests native and scaled output sizes
func TestBounds(t *testing.T) {
	img := Make([]byte("bounds"))
	if dx, dy := img.Bounds().Dx(), img.Bounds().Dy(); dx != 16 || dy != 16 {
		t.Errorf("native size: expected 16x16, got %dx%d", dx, dy)
	}

	testCases := []struct {
		size     int
		expected int
	}{
		{128, 128},
		{100, 96},
		{16, 16},
		{7, 16},
		{0, 16},
	}
	for _, tc := range testCases {
		img := MakeScaled([]byte("bounds"), tc.size)
		if dx := img.Bounds().Dx(); dx != tc.expected {
			t.Errorf("size %d: expected %d, got %d", tc.size, tc.expected, dx)
		}
		if dy := img.Bounds().Dy(); dy != tc.expected {
			t.Errorf("size %d: expected height %d, got %d", tc.size, tc.expected, dy)
		}
	}
}

// TestScaledPixels tests that upscaling replicates blocks exactly
func TestScaledPixels(t *testing.T) {
	native := Make([]byte("blocks"))
	scaled := MakeScaled([]byte("blocks"), 64)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if got, want := scaled.RGBAAt(x, y), native.RGBAAt(x/4, y/4); got != want {
				t.Fatalf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

// TestOpaque tests that every pixel is fully opaque
func TestOpaque(t *testing.T) {
	img := Make([]byte("opaque"))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a := img.RGBAAt(x, y).A; a != 255 {
				t.Fatalf("pixel (%d,%d): alpha %d", x, y, a)
			}
		}
	}
}

// TestEmptyInput tests that the empty string has a fingerprint too
func TestEmptyInput(t *testing.T) {
	img := Make(nil)
	if expected := (color.RGBA{94, 245, 223, 255}); img.RGBAAt(0, 0) != expected {
		t.Errorf("pixel (0,0): expected %v, got %v", expected, img.RGBAAt(0, 0))
	}
}
