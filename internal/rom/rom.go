// Package rom inspects Game Boy cartridge headers. It exists for the
// CLI's info mode only; the renderers never touch ROM images, they
// consume memory snapshots taken after the ROM has already executed.
package rom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrTooSmall is returned when the image cannot contain a full header.
var ErrTooSmall = errors.New("rom: image too small for header")

// headerEnd is the last header byte (global checksum high byte).
const headerEnd = 0x014F

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Info holds the decoded header fields the info command reports.
type Info struct {
	Title          string
	CGBFlag        byte
	CartType       byte
	CartTypeStr    string
	ROMSizeBytes   int
	ROMBanks       int
	RAMSizeBytes   int
	LogoOK         bool
	ChecksumOK     bool
	GlobalChecksum uint16
	Logo           []byte // raw logo bitmap bytes (0x0104-0x0133)
}

// Parse decodes the cartridge header of a ROM image.
func Parse(image []byte) (*Info, error) {
	if len(image) < headerEnd+1 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(image))
	}
	info := &Info{
		Title:          strings.TrimRight(string(image[0x0134:0x0144]), "\x00"),
		CGBFlag:        image[0x0143],
		CartType:       image[0x0147],
		GlobalChecksum: binary.BigEndian.Uint16(image[0x014E:0x0150]),
		Logo:           image[0x0104:0x0134],
		LogoOK:         logoOK(image),
		ChecksumOK:     checksumOK(image),
	}
	info.CartTypeStr = cartTypeString(info.CartType)
	info.ROMSizeBytes, info.ROMBanks = decodeROMSize(image[0x0148])
	info.RAMSizeBytes = decodeRAMSize(image[0x0149])
	return info, nil
}

// Summary formats the fields the way the info command prints them.
func (i *Info) Summary() string {
	return fmt.Sprintf("title=%q type=%s rom=%dB (%d banks) ram=%dB logo=%v checksum=%v",
		i.Title, i.CartTypeStr, i.ROMSizeBytes, i.ROMBanks, i.RAMSizeBytes, i.LogoOK, i.ChecksumOK)
}

func logoOK(image []byte) bool {
	for i, b := range nintendoLogo {
		if image[0x0104+i] != b {
			return false
		}
	}
	return true
}

// checksumOK verifies the header checksum over 0x0134-0x014C.
func checksumOK(image []byte) bool {
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - image[addr] - 1
	}
	return sum == image[0x014D]
}

func decodeROMSize(code byte) (size, banks int) {
	switch code {
	case 0x00:
		return 32 * 1024, 2
	case 0x01:
		return 64 * 1024, 4
	case 0x02:
		return 128 * 1024, 8
	case 0x03:
		return 256 * 1024, 16
	case 0x04:
		return 512 * 1024, 32
	case 0x05:
		return 1024 * 1024, 64
	case 0x06:
		return 2 * 1024 * 1024, 128
	case 0x07:
		return 4 * 1024 * 1024, 256
	case 0x08:
		return 8 * 1024 * 1024, 512
	default:
		return 0, 0
	}
}

func decodeRAMSize(code byte) int {
	switch code {
	case 0x02:
		return 8 * 1024
	case 0x03:
		return 32 * 1024
	case 0x04:
		return 128 * 1024
	case 0x05:
		return 64 * 1024
	default:
		return 0
	}
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1"
	case 0x05, 0x06:
		return "MBC2"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5"
	default:
		return "other/unknown"
	}
}

// Hexdump renders bytes 16 per line with a leading offset, the format
// the info command uses for the logo bitmap.
func Hexdump(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i%16 == 0 {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%04x ", i)
		}
		fmt.Fprintf(&sb, " %02X", b)
	}
	return sb.String()
}
