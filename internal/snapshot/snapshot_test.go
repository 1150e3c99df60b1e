package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/kernyan/pygb/internal/mem"
)

// buildJSONFrame writes a complete frame object with vram[i] = i&0xFF and
// oam[i] = 0xA0-i, as a compact JSON string.
func buildJSONFrame() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := 0; i < mem.VRAMSize; i++ {
		sb.WriteString(`"VRAM0_` + strconv.Itoa(i) + `":` + strconv.Itoa(i&0xFF) + `,`)
	}
	for i := 0; i < mem.OAMSize; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(`"OAM_` + strconv.Itoa(i) + `":` + strconv.Itoa(0xA0-i))
	}
	sb.WriteByte('}')
	return sb.String()
}

func TestReadJSON(t *testing.T) {
	fr, err := ReadJSON(strings.NewReader(buildJSONFrame()))
	if err != nil {
		t.Fatal(err)
	}
	b, err := fr.VRAM.ReadByte(300)
	if err != nil {
		t.Fatal(err)
	}
	if b != byte(300&0xFF) {
		t.Fatalf("vram[300] = %d, want %d", b, 300&0xFF)
	}
	b, err = fr.OAM.ReadByte(5)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xA0-5 {
		t.Fatalf("oam[5] = %d, want %d", b, 0xA0-5)
	}
}

func TestReadJSONMissingKey(t *testing.T) {
	s := buildJSONFrame()
	s = strings.Replace(s, `"OAM_0":`, `"XAM_0":`, 1)
	if _, err := ReadJSON(strings.NewReader(s)); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("got %v, want ErrBadFrame", err)
	}
}

func TestReadJSONRejectsNonByteValue(t *testing.T) {
	s := buildJSONFrame()
	s = strings.Replace(s, `"OAM_1":`+strconv.Itoa(0xA0-1), `"OAM_1":300`, 1)
	if _, err := ReadJSON(strings.NewReader(s)); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("got %v, want ErrBadFrame", err)
	}
}

func TestReadJSONRejectsGarbage(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("[1,2,3]")); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("got %v, want ErrBadFrame", err)
	}
}

func TestLoadRaw(t *testing.T) {
	dir := t.TempDir()
	buf := make([]byte, RawSize)
	buf[0] = 0x11
	buf[mem.VRAMSize] = 0x22
	path := filepath.Join(dir, "frame_7.bin")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	fr, err := LoadRaw(path)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Index != 7 {
		t.Fatalf("index = %d, want 7", fr.Index)
	}
	if b, _ := fr.VRAM.ReadByte(0); b != 0x11 {
		t.Fatalf("vram[0] = %#02x", b)
	}
	if b, _ := fr.OAM.ReadByte(0); b != 0x22 {
		t.Fatalf("oam[0] = %#02x", b)
	}
}

func TestLoadRawWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.bin")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRaw(path); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("got %v, want ErrBadFrame", err)
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "frame_1.json")
	if err := os.WriteFile(jsonPath, []byte(buildJSONFrame()), 0o644); err != nil {
		t.Fatal(err)
	}
	fr, err := Load(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Index != 1 {
		t.Fatalf("index = %d, want 1", fr.Index)
	}
}

func TestListSortsNumerically(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame_10.json", "frame_2.json", "frame_1.json", "notes.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"frame_1.json", "frame_2.json", "frame_10.json", "notes.json"}
	if len(got) != len(want) {
		t.Fatalf("got %d files", len(got))
	}
	for i := range want {
		if filepath.Base(got[i]) != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, filepath.Base(got[i]), want[i])
		}
	}
}

func TestNameIndex(t *testing.T) {
	cases := []struct {
		path string
		want int
	}{
		{"frames/frame_12.json", 12},
		{"frame_0.bin", 0},
		{"plain.json", -1},
		{"oddly_named_x.json", -1},
	}
	for _, c := range cases {
		if got := nameIndex(c.path); got != c.want {
			t.Fatalf("nameIndex(%q) = %d, want %d", c.path, got, c.want)
		}
	}
}
