package mem

import (
	"errors"
	"testing"
)

func TestNewVRAMSizeCheck(t *testing.T) {
	if _, err := NewVRAM(make([]byte, VRAMSize)); err != nil {
		t.Fatalf("exact size rejected: %v", err)
	}
	for _, n := range []int{0, VRAMSize - 1, VRAMSize + 1} {
		if _, err := NewVRAM(make([]byte, n)); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("size %d: got %v, want ErrInvalidSize", n, err)
		}
	}
}

func TestNewOAMSizeCheck(t *testing.T) {
	if _, err := NewOAM(make([]byte, OAMSize)); err != nil {
		t.Fatalf("exact size rejected: %v", err)
	}
	if _, err := NewOAM(make([]byte, OAMSize*2)); !errors.Is(err, ErrInvalidSize) {
		t.Fatal("oversized OAM accepted")
	}
}

func TestRegionCopiesInput(t *testing.T) {
	buf := make([]byte, OAMSize)
	buf[0] = 0xAA
	r, err := NewOAM(buf)
	if err != nil {
		t.Fatal(err)
	}
	buf[0] = 0x55 // caller mutates its slice after construction
	b, err := r.ReadByte(0)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xAA {
		t.Fatalf("region aliases caller buffer: got %#02x", b)
	}
}

func TestReadBounds(t *testing.T) {
	r, _ := NewOAM(make([]byte, OAMSize))
	cases := []struct {
		offset, length int
		ok             bool
	}{
		{0, OAMSize, true},
		{OAMSize - 1, 1, true},
		{OAMSize - 1, 2, false},
		{OAMSize, 1, false},
		{-1, 4, false},
		{0, -1, false},
		{4, OAMSize, false},
	}
	for _, c := range cases {
		_, err := r.Read(c.offset, c.length)
		if c.ok && err != nil {
			t.Fatalf("Read(%d,%d): unexpected error %v", c.offset, c.length, err)
		}
		if !c.ok && !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Read(%d,%d): got %v, want ErrOutOfBounds", c.offset, c.length, err)
		}
	}
}

func TestReadByteBounds(t *testing.T) {
	r, _ := NewOAM(make([]byte, OAMSize))
	if _, err := r.ReadByte(OAMSize); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	if _, err := r.ReadByte(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
}

func TestBaseAndSize(t *testing.T) {
	v, _ := NewVRAM(make([]byte, VRAMSize))
	o, _ := NewOAM(make([]byte, OAMSize))
	if v.Base() != 0x8000 || v.Size() != 8192 {
		t.Fatalf("VRAM base/size: %04x/%d", v.Base(), v.Size())
	}
	if o.Base() != 0xFE00 || o.Size() != 160 {
		t.Fatalf("OAM base/size: %04x/%d", o.Base(), o.Size())
	}
}
