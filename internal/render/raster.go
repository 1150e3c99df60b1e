// Package render turns VRAM/OAM snapshots into 2-bit rasters: the full
// tile sheet, the 256x256 background layer, and the composited sprite
// layer. Every renderer is a pure function of its memory regions, so
// independent renders may run concurrently over the same snapshot.
package render

import (
	"errors"

	"github.com/kernyan/pygb/internal/tile"
)

var (
	// ErrInvalidMapBase is returned for a tile-map base other than
	// 0x9800 or 0x9C00.
	ErrInvalidMapBase = errors.New("render: invalid tile-map base")
	// ErrInvalidConfig is returned for an impossible renderer option.
	ErrInvalidConfig = errors.New("render: invalid configuration")
)

// Raster is a width x height grid of 2-bit color indices (0..3),
// row-major. It is the uniform output of all three renderers.
type Raster struct {
	w, h int
	pix  []byte
}

// NewRaster returns a zeroed raster (every pixel index 0).
func NewRaster(w, h int) *Raster {
	return &Raster{w: w, h: h, pix: make([]byte, w*h)}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.w }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.h }

// At returns the color index at (x, y). Out-of-range coordinates read 0.
func (r *Raster) At(x, y int) byte {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return 0
	}
	return r.pix[y*r.w+x]
}

// Set writes a color index at (x, y), masked to 2 bits. Out-of-range
// coordinates are ignored.
func (r *Raster) Set(x, y int, ci byte) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	r.pix[y*r.w+x] = ci & 0x03
}

// Pix returns the backing pixel slice, row-major, one index per byte.
func (r *Raster) Pix() []byte { return r.pix }

// blitTile writes an 8x8 matrix at (x0, y0), unconditionally.
func (r *Raster) blitTile(px tile.PixelMatrix, x0, y0 int) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			r.Set(x0+col, y0+row, px[row][col])
		}
	}
}
