// Package rom implements support for the iNES ROM image this toolchain
// round-trips course data through: a 16-byte header, 16 PRG banks of
// 16KB each (bank 15 fixed at CPU $C000-$FFFF), and the fixed-bank
// pointer/metadata tables that index into it. See romaddr for the
// underlying address math.
package rom

import (
	"errors"
	"fmt"
	"os"
)

const (
	numPrgBanks = 16
	prgSize     = numPrgBanks * 16384
	headerSize  = 16
	magic       = "NES\x1a"
)

// ErrInvalidRom is wrapped by errors reporting an iNES header mismatch,
// truncated PRG, or a bank count other than the 16-bank + fixed-final-bank
// arrangement this toolchain supports.
var ErrInvalidRom = errors.New("invalid rom image")

// Header is the 16-byte iNES header, preserved byte-for-byte apart from
// the fields the packer is specified to touch (none; mapper, mirroring
// and battery flags are opaque to this toolchain and round-trip as-is).
type Header struct {
	PrgBanks uint8
	ChrBanks uint8
	Flags6   uint8
	Flags7   uint8
	Flags8   uint8
	Flags9   uint8
	Flags10  uint8
	Unused   [5]byte
}

func parseHeader(b []byte) (*Header, error) {
	if len(b) != headerSize {
		return nil, fmt.Errorf("header is %d bytes, want %d: %w", len(b), headerSize, ErrInvalidRom)
	}
	if string(b[0:4]) != magic {
		return nil, fmt.Errorf("bad iNES magic %q: %w", b[0:4], ErrInvalidRom)
	}

	h := &Header{
		PrgBanks: b[4],
		ChrBanks: b[5],
		Flags6:   b[6],
		Flags7:   b[7],
		Flags8:   b[8],
		Flags9:   b[9],
		Flags10:  b[10],
	}
	copy(h.Unused[:], b[11:16])
	return h, nil
}

func (h *Header) bytes() []byte {
	out := make([]byte, headerSize)
	copy(out[0:4], magic)
	out[4] = h.PrgBanks
	out[5] = h.ChrBanks
	out[6] = h.Flags6
	out[7] = h.Flags7
	out[8] = h.Flags8
	out[9] = h.Flags9
	out[10] = h.Flags10
	copy(out[11:16], h.Unused[:])
	return out
}

// Image is a ROM image held entirely in memory between Load and Save. The
// prg buffer owns the cartridge's address space for the lifetime of the
// Image; there is no long-lived file handle.
type Image struct {
	path   string
	Header *Header
	prg    []byte
	chr    []byte
}

// New builds an Image directly from a PRG buffer (exactly 16 banks) and an
// optional CHR buffer, without going through Load. Used by callers that
// construct a blank or synthetic image, such as tests.
func New(prg, chr []byte) (*Image, error) {
	if len(prg) != prgSize {
		return nil, fmt.Errorf("prg buffer is %d bytes, want %d: %w", len(prg), prgSize, ErrInvalidRom)
	}
	return &Image{
		Header: &Header{PrgBanks: numPrgBanks, ChrBanks: uint8(len(chr) / 8192)},
		prg:    append([]byte(nil), prg...),
		chr:    append([]byte(nil), chr...),
	}, nil
}

// Load reads path into memory and validates that it is a 16-bank PRG +
// fixed-final-bank iNES image (the only mapper arrangement this toolchain
// supports; see spec.md's Non-goals).
func Load(path string) (*Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom %q: %w", path, err)
	}
	if len(b) < headerSize {
		return nil, fmt.Errorf("rom %q truncated before header: %w", path, ErrInvalidRom)
	}

	h, err := parseHeader(b[:headerSize])
	if err != nil {
		return nil, fmt.Errorf("rom %q: %w", path, err)
	}
	if h.PrgBanks != numPrgBanks {
		return nil, fmt.Errorf("rom %q has %d PRG banks, want %d: %w", path, h.PrgBanks, numPrgBanks, ErrInvalidRom)
	}

	want := headerSize + prgSize
	if len(b) < want {
		return nil, fmt.Errorf("rom %q has %d PRG bytes, want %d: %w", path, len(b)-headerSize, prgSize, ErrInvalidRom)
	}

	img := &Image{
		path:   path,
		Header: h,
		prg:    append([]byte(nil), b[headerSize:want]...),
		chr:    append([]byte(nil), b[want:]...),
	}
	return img, nil
}

// Save writes the image to path (a fresh output path; there is no
// rollback of a partially-written image, per spec.md §4.4.7).
func (img *Image) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	for _, chunk := range [][]byte{img.Header.bytes(), img.prg, img.chr} {
		if _, err := f.Write(chunk); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}
	return nil
}

// PrgAt returns the byte at absolute PRG offset off.
func (img *Image) PrgAt(off int) (byte, error) {
	if off < 0 || off >= len(img.prg) {
		return 0, fmt.Errorf("prg offset %d out of range [0,%d): %w", off, len(img.prg), ErrInvalidRom)
	}
	return img.prg[off], nil
}

// SetPrgAt writes a byte at absolute PRG offset off.
func (img *Image) SetPrgAt(off int, v byte) error {
	if off < 0 || off >= len(img.prg) {
		return fmt.Errorf("prg offset %d out of range [0,%d): %w", off, len(img.prg), ErrInvalidRom)
	}
	img.prg[off] = v
	return nil
}

// PrgRange returns a copy of n bytes starting at absolute PRG offset off.
func (img *Image) PrgRange(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(img.prg) {
		return nil, fmt.Errorf("prg range [%d,%d) out of bounds (len %d): %w", off, off+n, len(img.prg), ErrInvalidRom)
	}
	out := make([]byte, n)
	copy(out, img.prg[off:off+n])
	return out, nil
}

// SetPrgRange overwrites len(data) bytes starting at absolute PRG offset off.
func (img *Image) SetPrgRange(off int, data []byte) error {
	if off < 0 || off+len(data) > len(img.prg) {
		return fmt.Errorf("prg range [%d,%d) out of bounds (len %d): %w", off, off+len(data), len(img.prg), ErrInvalidRom)
	}
	copy(img.prg[off:off+len(data)], data)
	return nil
}
