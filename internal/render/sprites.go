package render

import (
	"fmt"

	"github.com/kernyan/pygb/internal/mem"
	"github.com/kernyan/pygb/internal/tile"
)

const (
	// SpriteCount is the number of OAM entries.
	SpriteCount = 40
	oamStride   = 4

	// ScreenW and ScreenH are the DMG LCD dimensions, the default sprite
	// canvas size.
	ScreenW = 160
	ScreenH = 144
)

// Sprite attribute flag bits (OAM byte 3).
const (
	attrPalette  = 1 << 4
	attrFlipX    = 1 << 5
	attrFlipY    = 1 << 6
	attrPriority = 1 << 7
)

// Sprite is one decoded OAM entry. X and Y are screen coordinates after
// the hardware offsets (stored Y - 16, stored X - 8), so partially and
// fully off-screen placements are representable.
type Sprite struct {
	X, Y     int
	Tile     byte
	FlipX    bool
	FlipY    bool
	Palette  byte // 0 = OBP0, 1 = OBP1
	Priority bool // behind non-zero background when composited over one
	OAMIndex int
}

// SpriteConfig controls sprite compositing.
type SpriteConfig struct {
	Width  int // canvas width in pixels; 0 means ScreenW
	Height int // canvas height in pixels; 0 means ScreenH
	// TallSprites selects 8x16 OBJ mode: the tile index's low bit is
	// ignored, the top half uses index&0xFE and the bottom half the next
	// tile, and vertical flip spans all 16 rows.
	TallSprites bool
}

func (c *SpriteConfig) defaults() error {
	if c.Width == 0 {
		c.Width = ScreenW
	}
	if c.Height == 0 {
		c.Height = ScreenH
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}

// ParseOAM decodes all 40 sprite entries in table order. Entries are not
// validated beyond region bounds; off-screen positions are legal.
func ParseOAM(oam *mem.Region) ([]Sprite, error) {
	out := make([]Sprite, 0, SpriteCount)
	for i := 0; i < SpriteCount; i++ {
		raw, err := oam.Read(i*oamStride, oamStride)
		if err != nil {
			return nil, fmt.Errorf("oam entry %d: %w", i, err)
		}
		out = append(out, Sprite{
			Y:        int(raw[0]) - 16,
			X:        int(raw[1]) - 8,
			Tile:     raw[2],
			FlipX:    raw[3]&attrFlipX != 0,
			FlipY:    raw[3]&attrFlipY != 0,
			Palette:  (raw[3] & attrPalette) >> 4,
			Priority: raw[3]&attrPriority != 0,
			OAMIndex: i,
		})
	}
	return out, nil
}

// Sprites composites all OAM entries onto a fresh canvas. Sprites always
// use unsigned tile addressing regardless of the background mode. Drawing
// order is ascending OAM table index with later entries overwriting
// earlier ones; color index 0 is transparent and leaves the canvas
// untouched. Pixels outside the canvas are clipped, never wrapped.
//
// True hardware priority also ranks by X coordinate among the first ten
// sprites per scanline; this full-frame renderer deliberately
// approximates that with table order alone.
func Sprites(vram, oam *mem.Region, cfg SpriteConfig) (*Raster, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}
	sprites, err := ParseOAM(oam)
	if err != nil {
		return nil, err
	}
	out := NewRaster(cfg.Width, cfg.Height)
	for _, s := range sprites {
		if err := drawSprite(out, vram, s, cfg.TallSprites); err != nil {
			return nil, fmt.Errorf("sprite %d: %w", s.OAMIndex, err)
		}
	}
	return out, nil
}

func drawSprite(out *Raster, vram *mem.Region, s Sprite, tall bool) error {
	height := 8
	index := s.Tile
	if tall {
		height = 16
		index &= 0xFE
	}
	for half := 0; half*8 < height; half++ {
		px, err := tile.Decode(vram, tile.Addr8000.DataOffset(index+byte(half)))
		if err != nil {
			return err
		}
		if s.FlipX {
			px = px.FlipH()
		}
		if s.FlipY {
			px = px.FlipV()
		}
		// In 8x16 mode a vertical flip also swaps the two halves.
		y0 := s.Y + half*8
		if s.FlipY && tall {
			y0 = s.Y + (1-half)*8
		}
		blitSprite(out, px, s.X, y0)
	}
	return nil
}

// blitSprite writes an 8x8 matrix treating index 0 as transparent and
// clipping at the canvas edges.
func blitSprite(out *Raster, px tile.PixelMatrix, x0, y0 int) {
	for row := 0; row < 8; row++ {
		y := y0 + row
		if y < 0 || y >= out.Height() {
			continue
		}
		for col := 0; col < 8; col++ {
			x := x0 + col
			if x < 0 || x >= out.Width() {
				continue
			}
			if ci := px[row][col]; ci != 0 {
				out.Set(x, y, ci)
			}
		}
	}
}
