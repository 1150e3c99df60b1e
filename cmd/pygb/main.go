package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kernyan/pygb/internal/export"
	"github.com/kernyan/pygb/internal/render"
	"github.com/kernyan/pygb/internal/rom"
	"github.com/kernyan/pygb/internal/snapshot"
	"github.com/kernyan/pygb/internal/tile"
	"github.com/kernyan/pygb/internal/ui"
)

type CLIFlags struct {
	Frame     string // single snapshot file (.json or raw .bin)
	FramesDir string // directory of frame_<n>.json dumps
	ROMInfo   string // print cartridge header of a ROM and exit

	Views   string // comma list: tiles,bg,oam (or "all")
	MapBase string // 0x9800 or 0x9C00
	Signed  bool   // 8800 signed BG addressing
	Tall    bool   // 8x16 sprites
	Width   int    // sprite canvas width
	Height  int    // sprite canvas height

	Headless bool
	OutDir   string
	Scale    int
	Title    string
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.Frame, "frame", "", "path to one snapshot (.json or raw VRAM+OAM .bin)")
	flag.StringVar(&f.FramesDir, "frames", "", "directory of frame_<n>.json snapshots")
	flag.StringVar(&f.ROMInfo, "rominfo", "", "print the cartridge header of a ROM file and exit")

	flag.StringVar(&f.Views, "view", "all", "views to render: tiles, bg, oam (comma separated) or all")
	flag.StringVar(&f.MapBase, "mapbase", "0x9800", "background tile-map base: 0x9800 or 0x9C00")
	flag.BoolVar(&f.Signed, "signed", false, "use 8800 signed tile addressing for the background")
	flag.BoolVar(&f.Tall, "tall", false, "decode sprites in 8x16 mode")
	flag.IntVar(&f.Width, "w", render.ScreenW, "sprite canvas width")
	flag.IntVar(&f.Height, "h", render.ScreenH, "sprite canvas height")

	flag.BoolVar(&f.Headless, "headless", false, "write PNGs instead of opening a window")
	flag.StringVar(&f.OutDir, "out", "output", "output directory for PNGs")
	flag.IntVar(&f.Scale, "scale", 2, "window scale")
	flag.StringVar(&f.Title, "title", "pygb", "window title")
	flag.Parse()
	return f
}

func parseViews(s string) (tiles, bg, oam bool, err error) {
	for _, v := range strings.Split(strings.ToLower(s), ",") {
		switch strings.TrimSpace(v) {
		case "all":
			tiles, bg, oam = true, true, true
		case "tiles":
			tiles = true
		case "bg":
			bg = true
		case "oam":
			oam = true
		case "":
		default:
			return false, false, false, fmt.Errorf("unknown view %q (want tiles, bg, oam)", v)
		}
	}
	return tiles, bg, oam, nil
}

func parseMapBase(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 16)
	if err != nil {
		return 0, fmt.Errorf("mapbase %q: %w", s, err)
	}
	return uint16(v), nil
}

func loadFrames(f CLIFlags) ([]*snapshot.Frame, error) {
	if f.Frame != "" {
		fr, err := snapshot.Load(f.Frame)
		if err != nil {
			return nil, err
		}
		return []*snapshot.Frame{fr}, nil
	}
	paths, err := snapshot.List(f.FramesDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .json frames in %s", f.FramesDir)
	}
	frames := make([]*snapshot.Frame, 0, len(paths))
	for _, p := range paths {
		fr, err := snapshot.LoadJSON(p)
		if err != nil {
			return nil, err
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func runHeadless(f CLIFlags, frames []*snapshot.Frame) error {
	tiles, bg, oam, err := parseViews(f.Views)
	if err != nil {
		return err
	}
	mapBase, err := parseMapBase(f.MapBase)
	if err != nil {
		return err
	}
	mode := tile.Addr8000
	if f.Signed {
		mode = tile.Addr8800
	}
	if err := os.MkdirAll(f.OutDir, 0o755); err != nil {
		return err
	}

	write := func(name string, idx int, r *render.Raster) error {
		path := filepath.Join(f.OutDir, fmt.Sprintf("%s_%d.png", name, idx))
		if err := export.WritePNG(path, r, export.IdentityPalette); err != nil {
			return err
		}
		log.Printf("wrote %s (%dx%d)", path, r.Width(), r.Height())
		return nil
	}

	for i, fr := range frames {
		idx := fr.Index
		if idx < 0 {
			idx = i
		}
		if tiles {
			r, err := render.TileSheet(fr.VRAM, render.DefaultTilesPerRow)
			if err != nil {
				return fmt.Errorf("frame %d: %w", idx, err)
			}
			if err := write("tiles", idx, r); err != nil {
				return err
			}
		}
		if bg {
			r, err := render.Background(fr.VRAM, mapBase, mode)
			if err != nil {
				return fmt.Errorf("frame %d: %w", idx, err)
			}
			if err := write("bg", idx, r); err != nil {
				return err
			}
		}
		if oam {
			cfg := render.SpriteConfig{Width: f.Width, Height: f.Height, TallSprites: f.Tall}
			r, err := render.Sprites(fr.VRAM, fr.OAM, cfg)
			if err != nil {
				return fmt.Errorf("frame %d: %w", idx, err)
			}
			if err := write("oam", idx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func printROMInfo(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	info, err := rom.Parse(data)
	if err != nil {
		return err
	}
	fmt.Println(info.Summary())
	fmt.Println("logo bitmap:")
	fmt.Println(rom.Hexdump(info.Logo))
	return nil
}

func main() {
	f := parseFlags()

	if f.ROMInfo != "" {
		if err := printROMInfo(f.ROMInfo); err != nil {
			log.Fatalf("rominfo: %v", err)
		}
		return
	}
	if f.Frame == "" && f.FramesDir == "" {
		log.Fatal("need -frame or -frames (or -rominfo)")
	}

	frames, err := loadFrames(f)
	if err != nil {
		log.Fatalf("load snapshots: %v", err)
	}
	log.Printf("loaded %d frame(s)", len(frames))

	if f.Headless {
		if err := runHeadless(f, frames); err != nil {
			log.Fatal(err)
		}
		return
	}

	app, err := ui.NewApp(ui.Config{Title: f.Title, Scale: f.Scale, OutDir: f.OutDir}, frames)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
