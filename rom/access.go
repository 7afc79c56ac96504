package rom

import (
	"encoding/binary"
	"fmt"

	"github.com/jdharms/golfrom/romaddr"
)

// ReadFixed reads one byte at a CPU address in the fixed bank.
func (img *Image) ReadFixed(addr uint16) (byte, error) {
	off, err := romaddr.CpuToPrgFixed(addr)
	if err != nil {
		return 0, err
	}
	return img.PrgAt(off)
}

// WriteFixed writes one byte at a CPU address in the fixed bank.
func (img *Image) WriteFixed(addr uint16, v byte) error {
	off, err := romaddr.CpuToPrgFixed(addr)
	if err != nil {
		return err
	}
	return img.SetPrgAt(off, v)
}

// ReadFixedRange reads n bytes starting at a CPU address in the fixed bank.
func (img *Image) ReadFixedRange(addr uint16, n int) ([]byte, error) {
	off, err := romaddr.CpuToPrgFixed(addr)
	if err != nil {
		return nil, err
	}
	if _, err := romaddr.CpuToPrgFixed(addr + uint16(n) - 1); err != nil {
		return nil, fmt.Errorf("range [%#04x,%#04x) crosses out of the fixed bank: %w", addr, int(addr)+n, err)
	}
	return img.PrgRange(off, n)
}

// WriteFixedRange writes data starting at a CPU address in the fixed bank.
func (img *Image) WriteFixedRange(addr uint16, data []byte) error {
	off, err := romaddr.CpuToPrgFixed(addr)
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if _, err := romaddr.CpuToPrgFixed(addr + uint16(len(data)) - 1); err != nil {
			return fmt.Errorf("range [%#04x,%#04x) crosses out of the fixed bank: %w", addr, int(addr)+len(data), err)
		}
	}
	return img.SetPrgRange(off, data)
}

// ReadSwitched reads one byte at a CPU address in the given switchable bank.
func (img *Image) ReadSwitched(bank int, addr uint16) (byte, error) {
	off, err := romaddr.CpuToPrgSwitched(addr, bank)
	if err != nil {
		return 0, err
	}
	return img.PrgAt(off)
}

// WriteSwitched writes one byte at a CPU address in the given switchable bank.
func (img *Image) WriteSwitched(bank int, addr uint16, v byte) error {
	off, err := romaddr.CpuToPrgSwitched(addr, bank)
	if err != nil {
		return err
	}
	return img.SetPrgAt(off, v)
}

// ReadSwitchedRange reads n bytes starting at a CPU address in bank.
func (img *Image) ReadSwitchedRange(bank int, addr uint16, n int) ([]byte, error) {
	off, err := romaddr.CpuToPrgSwitched(addr, bank)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		if _, err := romaddr.CpuToPrgSwitched(addr+uint16(n)-1, bank); err != nil {
			return nil, fmt.Errorf("range [%#04x,%#04x) crosses out of bank %d: %w", addr, int(addr)+n, bank, err)
		}
	}
	return img.PrgRange(off, n)
}

// WriteSwitchedRange writes data starting at a CPU address in bank.
func (img *Image) WriteSwitchedRange(bank int, addr uint16, data []byte) error {
	off, err := romaddr.CpuToPrgSwitched(addr, bank)
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if _, err := romaddr.CpuToPrgSwitched(addr+uint16(len(data))-1, bank); err != nil {
			return fmt.Errorf("range [%#04x,%#04x) crosses out of bank %d: %w", addr, int(addr)+len(data), bank, err)
		}
	}
	return img.SetPrgRange(off, data)
}

// ReadFixedWordLE reads a little-endian 16-bit word at a CPU address in the
// fixed bank.
func (img *Image) ReadFixedWordLE(addr uint16) (uint16, error) {
	b, err := img.ReadFixedRange(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// WriteFixedWordLE writes a little-endian 16-bit word at a CPU address in
// the fixed bank.
func (img *Image) WriteFixedWordLE(addr uint16, v uint16) error {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return img.WriteFixedRange(addr, b)
}
