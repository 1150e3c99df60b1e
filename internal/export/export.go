// Package export converts 2-bit rasters into grayscale images and PNG
// files. It is deliberately thin: all pixel semantics live in render,
// this package only maps color indices to shades.
package export

import (
	"image"
	"image/png"
	"os"

	"github.com/kernyan/pygb/internal/render"
)

// Shades is the fixed DMG grayscale ramp: index 0 = white, 3 = black.
var Shades = [4]byte{0xFF, 0xC0, 0x60, 0x00}

// IdentityPalette maps color index i to shade i (BGP value 0b11100100).
const IdentityPalette byte = 0xE4

// Remap applies a DMG palette byte (BGP/OBP semantics: two bits per
// color index) to a raw color index.
func Remap(pal, ci byte) byte {
	return (pal >> ((ci & 3) * 2)) & 3
}

// GrayImage renders a raster to an 8-bit grayscale image through a
// palette byte. Use IdentityPalette for the raw index-to-shade mapping.
func GrayImage(r *render.Raster, pal byte) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width(), r.Height()))
	pix := r.Pix()
	for i, ci := range pix {
		img.Pix[i] = Shades[Remap(pal, ci)]
	}
	return img
}

// WritePNG encodes a raster to a PNG file.
func WritePNG(path string, r *render.Raster, pal byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, GrayImage(r, pal))
}
