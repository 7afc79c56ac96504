package rom

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrPatch is wrapped by errors from Patch.Apply when neither the
// original nor the patched byte sequence is present at a patch's offset,
// implying an unknown ROM variant (spec.md §7 PatchError).
var ErrPatch = errors.New("rom does not match expected patch original or patched bytes")

// Patch is a fixed-byte in-place code or table replacement at a known CPU
// address in the fixed bank. Applying a patch is idempotent: Apply is a
// no-op if the patched bytes are already present.
type Patch struct {
	Name     string
	Offset   uint16
	Original []byte
	Patched  []byte
}

// IsApplied reports whether the patched byte sequence is present at p's
// offset.
func (p *Patch) IsApplied(img *Image) (bool, error) {
	cur, err := img.ReadFixedRange(p.Offset, len(p.Patched))
	if err != nil {
		return false, fmt.Errorf("patch %s: %w", p.Name, err)
	}
	return bytes.Equal(cur, p.Patched), nil
}

// CanApply reports whether the original (unpatched) byte sequence is
// present at p's offset.
func (p *Patch) CanApply(img *Image) (bool, error) {
	cur, err := img.ReadFixedRange(p.Offset, len(p.Original))
	if err != nil {
		return false, fmt.Errorf("patch %s: %w", p.Name, err)
	}
	return bytes.Equal(cur, p.Original), nil
}

// Apply applies p to img. It is a no-op if already applied, and fails with
// ErrPatch if neither the original nor patched bytes are present.
func (p *Patch) Apply(img *Image) error {
	applied, err := p.IsApplied(img)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}

	can, err := p.CanApply(img)
	if err != nil {
		return err
	}
	if !can {
		return fmt.Errorf("patch %s at %#04x: %w", p.Name, p.Offset, ErrPatch)
	}

	if err := img.WriteFixedRange(p.Offset, p.Patched); err != nil {
		return fmt.Errorf("patch %s: %w", p.Name, err)
	}
	return nil
}

// The three code/table patches the packer depends on (spec.md §4.4.2).
// Byte sequences and offsets are the cartridge's actual stock values; they
// are opaque 6502 machine code to this toolchain.
var (
	// MultiBankLookupPatch replaces the course-bank lookup routine
	// (originally "LDX CourseNumber; LDA BankNumTerrainDataTable,X; JSR
	// BankSwitchRoutine") so that a hole's terrain bank is instead
	// fetched from the per-hole table at bank 3 $A700, indexed by the
	// doubled hole index.
	MultiBankLookupPatch = &Patch{
		Name:   "multi_bank_lookup",
		Offset: 0xDB68,
		Original: []byte{
			0xAE, 0x02, 0x01, 0xBD, 0xBE, 0xDB, 0x20, 0x52, 0xD3,
		},
		Patched: []byte{
			0xA6, 0x31, 0xBD, 0x00, 0xA7, 0x20, 0x52, 0xD3, 0xEA,
		},
	}

	// CourseThreeMirrorPatch zeroes the course-3 hole-offset entry so
	// course 3 aliases course 1's holes, freeing a 36-hole write from
	// needing a third course slot.
	CourseThreeMirrorPatch = &Patch{
		Name:     "course_3_mirror",
		Offset:   CourseHoleOffsetAddr + 2,
		Original: []byte{0x24},
		Patched:  []byte{0x00},
	}

	// CourseTwoMirrorPatch zeroes the course-2 hole-offset entry so a
	// single-course write can alias course 2 onto course 1.
	CourseTwoMirrorPatch = &Patch{
		Name:     "course_2_mirror",
		Offset:   CourseHoleOffsetAddr + 1,
		Original: []byte{0x12},
		Patched:  []byte{0x00},
	}
)
