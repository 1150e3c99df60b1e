package export

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/kernyan/pygb/internal/render"
)

func TestRemap(t *testing.T) {
	// Identity palette leaves indices alone.
	for ci := byte(0); ci < 4; ci++ {
		if Remap(IdentityPalette, ci) != ci {
			t.Fatalf("identity remap broke index %d", ci)
		}
	}
	// Inverted palette 0b00011011 swaps the ramp.
	inv := byte(0x1B)
	for ci := byte(0); ci < 4; ci++ {
		if got := Remap(inv, ci); got != 3-ci {
			t.Fatalf("inverted remap %d -> %d, want %d", ci, got, 3-ci)
		}
	}
}

func TestGrayImageShades(t *testing.T) {
	r := render.NewRaster(4, 1)
	for x := 0; x < 4; x++ {
		r.Set(x, 0, byte(x))
	}
	img := GrayImage(r, IdentityPalette)
	for x := 0; x < 4; x++ {
		if img.GrayAt(x, 0).Y != Shades[x] {
			t.Fatalf("index %d -> shade %#02x, want %#02x", x, img.GrayAt(x, 0).Y, Shades[x])
		}
	}
}

func TestWritePNG(t *testing.T) {
	r := render.NewRaster(8, 8)
	r.Set(3, 3, 3)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNG(path, r, IdentityPalette); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("decoded bounds %v", img.Bounds())
	}
}
