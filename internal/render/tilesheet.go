package render

import (
	"fmt"

	"github.com/kernyan/pygb/internal/mem"
	"github.com/kernyan/pygb/internal/tile"
)

// DefaultTilesPerRow is the contact-sheet width used when none is given.
const DefaultTilesPerRow = 16

// TileSheet decodes all 384 tiles of the tile-data area (unsigned
// enumeration order) and lays them into a contact-sheet raster,
// tilesPerRow tiles wide. Position in the sheet carries no semantic
// meaning; the sheet exists for inspection only.
func TileSheet(vram *mem.Region, tilesPerRow int) (*Raster, error) {
	if tilesPerRow <= 0 {
		tilesPerRow = DefaultTilesPerRow
	}
	rows := (tile.Count + tilesPerRow - 1) / tilesPerRow
	out := NewRaster(tilesPerRow*8, rows*8)
	for i := 0; i < tile.Count; i++ {
		px, err := tile.Decode(vram, i*tile.Size)
		if err != nil {
			return nil, fmt.Errorf("tile sheet: tile %d: %w", i, err)
		}
		out.blitTile(px, (i%tilesPerRow)*8, (i/tilesPerRow)*8)
	}
	return out, nil
}
