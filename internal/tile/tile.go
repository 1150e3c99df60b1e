// Package tile decodes 8x8 tile bitmaps from the packed 2bpp bit-plane
// format used for all DMG tile graphics, and resolves tile indices to
// byte offsets under the two hardware addressing modes.
package tile

import (
	"fmt"

	"github.com/kernyan/pygb/internal/mem"
)

const (
	// Size is the byte length of one tile: 8 rows * 2 bytes (lo/hi plane).
	Size = 16
	// Count is the number of tiles in the tile-data area (3 blocks of 128).
	Count = 384
	// DataSize is the byte length of the tile-data area within VRAM.
	DataSize = Count * Size
)

// AddrMode selects how a tile index byte maps to a tile-data offset.
type AddrMode int

const (
	// Addr8000 treats the index as unsigned from the start of tile data.
	Addr8000 AddrMode = iota
	// Addr8800 treats the index as signed around the middle block at 0x1000.
	Addr8800
)

func (m AddrMode) String() string {
	if m == Addr8800 {
		return "8800-signed"
	}
	return "8000-unsigned"
}

// DataOffset resolves a tile index to its VRAM-relative byte offset.
// Unsigned: index*16 from offset 0. Signed: 0x1000 + int8(index)*16, so
// index bytes 0x80..0xFF land in the block shared with unsigned 128..255.
func (m AddrMode) DataOffset(index byte) int {
	if m == Addr8800 {
		return 0x1000 + int(int8(index))*Size
	}
	return int(index) * Size
}

// PixelMatrix is a decoded 8x8 tile; each cell is a 2-bit color index.
type PixelMatrix [8][8]byte

// Decode reads 16 bytes at tileBase and unpacks them into a PixelMatrix.
// Each row is a low-plane byte then a high-plane byte; bit 7 is the
// leftmost pixel and the color index is (hiBit<<1)|loBit.
func Decode(r *mem.Region, tileBase int) (PixelMatrix, error) {
	var px PixelMatrix
	data, err := r.Read(tileBase, Size)
	if err != nil {
		return PixelMatrix{}, fmt.Errorf("decode tile at offset %#x: %w", tileBase, err)
	}
	for row := 0; row < 8; row++ {
		lo := data[row*2]
		hi := data[row*2+1]
		for col := 0; col < 8; col++ {
			bit := 7 - byte(col)
			px[row][col] = ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)
		}
	}
	return px, nil
}

// FlipH returns the matrix mirrored left-to-right.
func (p PixelMatrix) FlipH() PixelMatrix {
	var out PixelMatrix
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			out[row][col] = p[row][7-col]
		}
	}
	return out
}

// FlipV returns the matrix mirrored top-to-bottom.
func (p PixelMatrix) FlipV() PixelMatrix {
	var out PixelMatrix
	for row := 0; row < 8; row++ {
		out[row] = p[7-row]
	}
	return out
}
