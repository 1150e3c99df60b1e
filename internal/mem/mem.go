// Package mem provides read-only, bounds-checked views over the two
// graphics memory regions of a DMG-class machine: VRAM (0x8000-0x9FFF)
// and OAM (0xFE00-0xFE9F). All address arithmetic in the renderers goes
// through a Region so magic offsets stay in one place.
package mem

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a read extends past a region's end.
	ErrOutOfBounds = errors.New("mem: read out of bounds")
	// ErrInvalidSize is returned when a snapshot buffer has the wrong length.
	ErrInvalidSize = errors.New("mem: invalid region size")
)

const (
	VRAMBase = 0x8000
	VRAMSize = 0x2000 // 8 KiB
	OAMBase  = 0xFE00
	OAMSize  = 0xA0 // 40 entries * 4 bytes
)

// Region is a fixed-length byte buffer with a declared hardware base
// address. The buffer is copied on construction and never written after,
// so a Region may be shared by concurrent renders.
type Region struct {
	base uint16
	data []byte
}

// NewVRAM wraps an 8 KiB VRAM snapshot. The input must be exactly
// VRAMSize bytes; it is copied, the caller keeps its slice.
func NewVRAM(data []byte) (*Region, error) {
	return newRegion(VRAMBase, VRAMSize, data)
}

// NewOAM wraps a 160-byte OAM snapshot.
func NewOAM(data []byte) (*Region, error) {
	return newRegion(OAMBase, OAMSize, data)
}

func newRegion(base uint16, size int, data []byte) (*Region, error) {
	if len(data) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for region at 0x%04X",
			ErrInvalidSize, len(data), size, base)
	}
	buf := make([]byte, size)
	copy(buf, data)
	return &Region{base: base, data: buf}, nil
}

// Base returns the region's hardware base address.
func (r *Region) Base() uint16 { return r.base }

// Size returns the region's length in bytes.
func (r *Region) Size() int { return len(r.data) }

// Read returns length bytes starting at offset. The returned slice
// aliases the region and must not be modified.
func (r *Region) Read(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(r.data) {
		return nil, fmt.Errorf("%w: [%d,%d) in region of %d bytes at 0x%04X",
			ErrOutOfBounds, offset, offset+length, len(r.data), r.base)
	}
	return r.data[offset : offset+length], nil
}

// ReadByte returns the single byte at offset.
func (r *Region) ReadByte(offset int) (byte, error) {
	if offset < 0 || offset >= len(r.data) {
		return 0, fmt.Errorf("%w: offset %d in region of %d bytes at 0x%04X",
			ErrOutOfBounds, offset, len(r.data), r.base)
	}
	return r.data[offset], nil
}
