package rom

import (
	"os"
	"path/filepath"
	"testing"
)

func blankImage() *Image {
	return &Image{
		Header: &Header{PrgBanks: numPrgBanks, ChrBanks: 0},
		prg:    make([]byte, prgSize),
		chr:    nil,
	}
}

func TestNewBuildsValidImage(t *testing.T) {
	prg := make([]byte, prgSize)
	prg[0] = 0x7E

	img, err := New(prg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if img.Header.PrgBanks != numPrgBanks {
		t.Errorf("PrgBanks = %d, want %d", img.Header.PrgBanks, numPrgBanks)
	}
	if b, err := img.PrgAt(0); err != nil || b != 0x7E {
		t.Errorf("PrgAt(0) = (%#02x, %v), want (0x7e, nil)", b, err)
	}

	// New copies its input; mutating the caller's slice afterward must not
	// be visible through img.
	prg[1] = 0xFF
	if b, _ := img.PrgAt(1); b != 0 {
		t.Errorf("PrgAt(1) = %#02x after mutating caller's slice, want 0x00 (New must copy)", b)
	}
}

func TestNewRejectsWrongSize(t *testing.T) {
	if _, err := New(make([]byte, prgSize-1), nil); err == nil {
		t.Fatal("New: got nil error for a short prg buffer")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	img := blankImage()
	img.prg[0] = 0xAB
	img.prg[prgSize-1] = 0xCD

	dir := t.TempDir()
	path := filepath.Join(dir, "test.nes")
	if err := img.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Header.PrgBanks != numPrgBanks {
		t.Errorf("PrgBanks = %d, want %d", got.Header.PrgBanks, numPrgBanks)
	}
	if b, _ := got.PrgAt(0); b != 0xAB {
		t.Errorf("prg[0] = %#02x, want 0xab", b)
	}
	if b, _ := got.PrgAt(prgSize - 1); b != 0xCD {
		t.Errorf("prg[last] = %#02x, want 0xcd", b)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.nes")
	b := make([]byte, headerSize+prgSize)
	copy(b, "XXX\x1a")
	b[4] = numPrgBanks
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("want error for bad magic")
	}
}

func TestLoadRejectsWrongBankCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wrongbanks.nes")
	b := make([]byte, headerSize+16384*4)
	copy(b, magic)
	b[4] = 4
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("want error for wrong PRG bank count")
	}
}

func TestFixedAndSwitchedAccess(t *testing.T) {
	img := blankImage()

	if err := img.WriteFixed(0xC000, 0x42); err != nil {
		t.Fatalf("WriteFixed: %v", err)
	}
	if b, err := img.ReadFixed(0xC000); err != nil || b != 0x42 {
		t.Errorf("ReadFixed = %v,%v want 0x42,nil", b, err)
	}

	if err := img.WriteSwitched(3, 0x8000, 0x7E); err != nil {
		t.Fatalf("WriteSwitched: %v", err)
	}
	if b, err := img.ReadSwitched(3, 0x8000); err != nil || b != 0x7E {
		t.Errorf("ReadSwitched = %v,%v want 0x7e,nil", b, err)
	}

	// bank 3's $8000 and the fixed bank's $C000 must land at distinct
	// absolute PRG offsets.
	if b, _ := img.PrgAt(3 * 16384); b != 0x7E {
		t.Errorf("bank 3 $8000 did not land at prg offset %d", 3*16384)
	}
	if b, _ := img.PrgAt(15 * 16384); b != 0x42 {
		t.Errorf("fixed $c000 did not land at prg offset %d", 15*16384)
	}
}

func TestFixedWordLERoundTrip(t *testing.T) {
	img := blankImage()
	if err := img.WriteFixedWordLE(0xDBC1, 0x1234); err != nil {
		t.Fatalf("WriteFixedWordLE: %v", err)
	}
	v, err := img.ReadFixedWordLE(0xDBC1)
	if err != nil {
		t.Fatalf("ReadFixedWordLE: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("got %#04x, want 0x1234", v)
	}
}

func TestHoleTableAccess(t *testing.T) {
	img := blankImage()

	if err := img.WriteHoleByte(ParAddr, 5, 4); err != nil {
		t.Fatalf("WriteHoleByte: %v", err)
	}
	if v, err := img.ReadHoleByte(ParAddr, 5); err != nil || v != 4 {
		t.Errorf("ReadHoleByte = %v,%v want 4,nil", v, err)
	}

	if err := img.WriteHoleWordLE(HoleTerrainStartAddr, 10, 0x8123); err != nil {
		t.Fatalf("WriteHoleWordLE: %v", err)
	}
	if v, err := img.ReadHoleWordLE(HoleTerrainStartAddr, 10); err != nil || v != 0x8123 {
		t.Errorf("ReadHoleWordLE = %#04x,%v want 0x8123,nil", v, err)
	}

	if _, err := img.ReadHoleByte(ParAddr, NumHoles); err == nil {
		t.Error("want error for out-of-range hole index")
	}
}

func TestBankLookupTable(t *testing.T) {
	img := blankImage()

	if err := img.WriteBankLookup(7, 2); err != nil {
		t.Fatalf("WriteBankLookup: %v", err)
	}
	got, err := img.ReadBankLookup(7)
	if err != nil || got != 2 {
		t.Errorf("ReadBankLookup = %v,%v want 2,nil", got, err)
	}

	// odd byte stays zero.
	odd, err := img.ReadSwitched(Bank3, BankLookupAddr+uint16(7)*2+1)
	if err != nil || odd != 0 {
		t.Errorf("odd byte = %v,%v want 0,nil", odd, err)
	}
}
