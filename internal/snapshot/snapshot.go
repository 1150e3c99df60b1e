// Package snapshot loads VRAM/OAM memory dumps from disk. Two formats
// are supported: the per-byte JSON frame dumps produced by the debug
// harness (keys VRAM0_0..VRAM0_8191 and OAM_0..OAM_159) and raw binary
// dumps of VRAM followed by OAM.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kernyan/pygb/internal/mem"
)

// ErrBadFrame is returned when a frame file is structurally invalid.
var ErrBadFrame = errors.New("snapshot: malformed frame")

// RawSize is the length of a raw binary dump: VRAM then OAM.
const RawSize = mem.VRAMSize + mem.OAMSize

// Frame is one loaded memory snapshot, ready for the renderers.
type Frame struct {
	VRAM *mem.Region
	OAM  *mem.Region
	// Index is the frame number parsed from the file name, or -1 when
	// the name carries none.
	Index int
}

// New wraps raw VRAM and OAM bytes into a Frame.
func New(vram, oam []byte) (*Frame, error) {
	v, err := mem.NewVRAM(vram)
	if err != nil {
		return nil, err
	}
	o, err := mem.NewOAM(oam)
	if err != nil {
		return nil, err
	}
	return &Frame{VRAM: v, OAM: o, Index: -1}, nil
}

// ReadJSON decodes a JSON frame dump: a flat object whose keys are
// "VRAM0_<i>" for i in [0,8192) and "OAM_<i>" for i in [0,160), each an
// integer in [0,255]. Missing keys fail; unknown keys are ignored.
func ReadJSON(r io.Reader) (*Frame, error) {
	var raw map[string]int
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	vram, err := collect(raw, "VRAM0_", mem.VRAMSize)
	if err != nil {
		return nil, err
	}
	oam, err := collect(raw, "OAM_", mem.OAMSize)
	if err != nil {
		return nil, err
	}
	return New(vram, oam)
}

func collect(raw map[string]int, prefix string, size int) ([]byte, error) {
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		v, ok := raw[prefix+strconv.Itoa(i)]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %s%d", ErrBadFrame, prefix, i)
		}
		if v < 0 || v > 0xFF {
			return nil, fmt.Errorf("%w: %s%d = %d not a byte", ErrBadFrame, prefix, i, v)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// LoadJSON reads a JSON frame file and tags it with the index parsed
// from its name (frame_<n>.json).
func LoadJSON(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fr, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fr.Index = nameIndex(path)
	return fr, nil
}

// LoadRaw reads a raw binary dump: exactly VRAM (8192 bytes) followed by
// OAM (160 bytes).
func LoadRaw(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) != RawSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrBadFrame, path, len(data), RawSize)
	}
	fr, err := New(data[:mem.VRAMSize], data[mem.VRAMSize:])
	if err != nil {
		return nil, err
	}
	fr.Index = nameIndex(path)
	return fr, nil
}

// Load picks the format from the file extension: .json or raw otherwise.
func Load(path string) (*Frame, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(path)
	}
	return LoadRaw(path)
}

// List returns the JSON frame files in dir sorted by the numeric suffix
// of their stem (frame_2.json before frame_10.json). Files without a
// numeric suffix sort last, by name.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := nameIndex(matches[i]), nameIndex(matches[j])
		if a != b {
			// -1 (no index) sorts after any numbered frame
			if a == -1 || b == -1 {
				return b == -1
			}
			return a < b
		}
		return matches[i] < matches[j]
	})
	return matches, nil
}

// nameIndex parses the trailing _<n> of a file stem, or -1.
func nameIndex(path string) int {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	i := strings.LastIndexByte(stem, '_')
	if i < 0 {
		return -1
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil || n < 0 {
		return -1
	}
	return n
}
