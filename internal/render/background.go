package render

import (
	"fmt"

	"github.com/kernyan/pygb/internal/mem"
	"github.com/kernyan/pygb/internal/tile"
)

const (
	// MapBase9800 and MapBase9C00 are the two architecturally valid
	// background tile-map bases (LCDC bit 3 selects between them).
	MapBase9800 = 0x9800
	MapBase9C00 = 0x9C00

	mapTiles = 32 // tiles per map row and column
	// BGSize is the side length in pixels of the full background layer.
	BGSize = mapTiles * 8
)

// Background resolves the 32x32 tile map at mapBase into the full
// 256x256 background raster. Tile indices are turned into tile-data
// offsets by mode; every pixel is written unconditionally (index 0 is an
// opaque color at this layer, not transparency).
func Background(vram *mem.Region, mapBase uint16, mode tile.AddrMode) (*Raster, error) {
	if mapBase != MapBase9800 && mapBase != MapBase9C00 {
		return nil, fmt.Errorf("%w: %#04x (want 0x9800 or 0x9C00)", ErrInvalidMapBase, mapBase)
	}
	mapOff := int(mapBase) - int(vram.Base())
	out := NewRaster(BGSize, BGSize)
	for row := 0; row < mapTiles; row++ {
		for col := 0; col < mapTiles; col++ {
			idx, err := vram.ReadByte(mapOff + row*mapTiles + col)
			if err != nil {
				return nil, fmt.Errorf("background map (%d,%d): %w", row, col, err)
			}
			px, err := tile.Decode(vram, mode.DataOffset(idx))
			if err != nil {
				return nil, fmt.Errorf("background tile %#02x at (%d,%d): %w", idx, row, col, err)
			}
			out.blitTile(px, col*8, row*8)
		}
	}
	return out, nil
}
