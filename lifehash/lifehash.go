// Package lifehash renders a small visual fingerprint of a byte
// string, so a human can compare two payloads at a glance before
// trusting a transfer.
//
// The SHA-256 digest of the input seeds a 16x16 cell grid, one digest
// bit per cell. The grid is evolved for 32 generations of Conway's
// Game of Life on a torus, and each cell's alive-history, weighted
// toward the late generations, picks its position in a two-color
// gradient derived from the digest. The construction is fully
// deterministic and intentionally has no cryptographic strength: it
// is a recognizer, not an authenticator.
package lifehash

import (
	"crypto/sha256"
	"image"
	"image/color"
	"math"
)

const (
	gridSize    = 16
	generations = 32
	historyBase = 0.85
)

type grid [gridSize * gridSize]bool

// Make renders the fingerprint of data at its native 16x16 size.
func Make(data []byte) *image.RGBA {
	digest := sha256.Sum256(data)

	// One digest bit per cell, most significant bit first. A 32-byte
	// digest covers the 256 cells exactly.
	var cells grid
	for i := range cells {
		cells[i] = digest[i/8]&(1<<(7-i%8)) != 0
	}

	// The last generation carries weight 1, each earlier one decays
	// by the history base, so the fingerprint reflects where the
	// automaton settled rather than where it started.
	var weights [generations]float64
	total := 0.0
	w := 1.0
	for g := generations - 1; g >= 0; g-- {
		weights[g] = w
		total += w
		w *= historyBase
	}

	var history [gridSize * gridSize]float64
	for g := 0; g < generations; g++ {
		cells = step(cells)
		for i, alive := range cells {
			if alive {
				history[i] += weights[g]
			}
		}
	}

	colorA, colorB := palette(digest)

	img := image.NewRGBA(image.Rect(0, 0, gridSize, gridSize))
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			t := history[y*gridSize+x] / total
			img.SetRGBA(x, y, lerp(colorA, colorB, t))
		}
	}
	return img
}

// MakeScaled renders the fingerprint of data upscaled nearest-neighbor
// to roughly size by size pixels. The factor is the largest integer
// whose scaled grid fits in size, at least 1, so the result is always
// a multiple of 16 on a side.
func MakeScaled(data []byte, size int) *image.RGBA {
	factor := size / gridSize
	if factor < 1 {
		factor = 1
	}
	return scale(Make(data), factor)
}

// step advances the automaton one generation. Neighborhoods wrap on
// both axes.
func step(cells grid) grid {
	var next grid
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := (x + dx + gridSize) % gridSize
					ny := (y + dy + gridSize) % gridSize
					if cells[ny*gridSize+nx] {
						n++
					}
				}
			}
			alive := cells[y*gridSize+x]
			next[y*gridSize+x] = n == 3 || (alive && n == 2)
		}
	}
	return next
}

// palette derives the gradient endpoints. The grid consumes all 32
// digest bytes, so the colors come from a second hash of the digest.
func palette(digest [sha256.Size]byte) (color.RGBA, color.RGBA) {
	ext := sha256.Sum256(digest[:])
	a := color.RGBA{R: ext[0], G: ext[1], B: ext[2], A: 255}
	b := color.RGBA{R: ext[3], G: ext[4], B: ext[5], A: 255}
	return a, b
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: mix(a.R, b.R, t),
		G: mix(a.G, b.G, t),
		B: mix(a.B, b.B, t),
		A: 255,
	}
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
}

func scale(src *image.RGBA, factor int) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	for y := 0; y < bounds.Dy()*factor; y++ {
		for x := 0; x < bounds.Dx()*factor; x++ {
			dst.SetRGBA(x, y, src.RGBAAt(x/factor, y/factor))
		}
	}
	return dst
}
