package cpu

import "testing"

// fakeBus is a minimal Bus backed by a flat ROM slice and a RAM map, used
// to exercise Cycle against the six concrete scenarios in spec §8.
type fakeBus struct {
	rom [65536][2]byte
	ram map[uint16]byte
	in  byte
}

func newFakeBus() *fakeBus {
	return &fakeBus{ram: make(map[uint16]byte), in: 0xFF}
}

func (f *fakeBus) ReadROM(pc uint16) (byte, byte) { return f.rom[pc][0], f.rom[pc][1] }
func (f *fakeBus) ReadRAM(addr uint16) byte        { return f.ram[addr] }
func (f *fakeBus) In() byte                        { return f.in }

// TestCycle_LDImmediateToAC covers spec §8 scenario 1. IR/D are the
// instruction under test: Cycle decodes S.IR/S.D, the instruction
// fetched the *previous* cycle (spec §3), not whatever sits at
// ROM[S.PC] — that fetch only feeds next cycle's decode.
func TestCycle_LDImmediateToAC(t *testing.T) {
	b := newFakeBus()
	s := State{IR: 0b000_000_00, D: 0x42}
	res := Cycle(s, b, false)
	if res.Next.AC != 0x42 {
		t.Fatalf("AC got %#02x want 0x42", res.Next.AC)
	}
	if res.Next.PC != 1 {
		t.Fatalf("PC got %#04x want 1", res.Next.PC)
	}
	if res.Write {
		t.Fatalf("unexpected RAM write")
	}
}

// TestCycle_STAcToXY covers spec §8 scenario 2. The RAM write stores the
// bus value, so the instruction selects AC as bus source (bus=2).
func TestCycle_STAcToXY(t *testing.T) {
	b := newFakeBus()
	s := State{IR: 0b110_011_10, D: 0x00, AC: 0x5A, X: 0x34, Y: 0x12}
	res := Cycle(s, b, false)
	if !res.Write || res.WriteAddr != 0x1234 || res.WriteByte != 0x5A {
		t.Fatalf("write got (%v, %#04x, %#02x) want (true, 0x1234, 0x5A)", res.Write, res.WriteAddr, res.WriteByte)
	}
	if res.Next.AC != 0x5A {
		t.Fatalf("AC got %#02x want unchanged 0x5A", res.Next.AC)
	}
	if res.Next.PC != 1 {
		t.Fatalf("PC got %#04x want 1", res.Next.PC)
	}
}

// TestCycle_AddFromRAM covers spec §8 scenario 3.
func TestCycle_AddFromRAM(t *testing.T) {
	b := newFakeBus()
	b.ram[0x0010] = 0x03
	s := State{IR: 0b100_000_01, D: 0x10, AC: 0x04}
	res := Cycle(s, b, false)
	if res.Next.AC != 0x07 {
		t.Fatalf("AC got %#02x want 0x07", res.Next.AC)
	}
}

// TestCycle_ConditionalBranchOnZero covers spec §8 scenario 4.
func TestCycle_ConditionalBranchOnZero(t *testing.T) {
	b := newFakeBus()
	s := State{IR: 0b111_100_00, D: 0x40, AC: 0, PC: 0x0200}
	res := Cycle(s, b, false)
	if res.Next.PC != 0x0240 {
		t.Fatalf("PC got %#04x want 0x0240", res.Next.PC)
	}
}

// TestCycle_UnconditionalFarJump covers spec §8 scenario 5.
func TestCycle_UnconditionalFarJump(t *testing.T) {
	b := newFakeBus()
	s := State{IR: 0b111_000_00, D: 0x80, Y: 0x30, PC: 0x0200}
	res := Cycle(s, b, false)
	if res.Next.PC != 0x3080 {
		t.Fatalf("PC got %#04x want 0x3080", res.Next.PC)
	}
}

// TestCycle_Mode7OutWithXIncrement covers spec §8 scenario 6.
func TestCycle_Mode7OutWithXIncrement(t *testing.T) {
	b := newFakeBus()
	s := State{IR: 0b000_111_10, D: 0x00, X: 0x05, Y: 0x00, AC: 0x77}
	res := Cycle(s, b, false)
	if res.Next.Out != 0x77 {
		t.Fatalf("Out got %#02x want 0x77", res.Next.Out)
	}
	if res.Next.X != 0x06 {
		t.Fatalf("X got %#02x want 0x06", res.Next.X)
	}
}

func TestCycle_STDoesNotTouchACOrOut(t *testing.T) {
	b := newFakeBus()
	// ST, mode 0 (D,0) -> AC target suppressed
	s := State{IR: 0b110_000_00, D: 0x00, AC: 0x11, Out: 0x22}
	res := Cycle(s, b, false)
	if res.Next.AC != s.AC || res.Next.Out != s.Out {
		t.Fatalf("ST must not change AC/Out: got AC=%#02x Out=%#02x", res.Next.AC, res.Next.Out)
	}
}

func TestCycle_STXAndSTYStillWriteback(t *testing.T) {
	b := newFakeBus()
	// mode 4 = ST X: ins=6 (ST), mode=4
	s := State{IR: 0b110_100_00, D: 0x00, AC: 0x99, X: 0x01}
	res := Cycle(s, b, false)
	if res.Next.X != 0x99 {
		t.Fatalf("ST X must still writeback to X: got %#02x want 0x99", res.Next.X)
	}
}

func TestCycle_ResetForcesPCZero(t *testing.T) {
	b := newFakeBus()
	s := State{IR: 0b111_000_00, D: 0x80, Y: 0x30, PC: 0x0050}
	res := Cycle(s, b, true)
	if res.Next.PC != 0 {
		t.Fatalf("PC got %#04x want 0 under reset", res.Next.PC)
	}
}

func TestCycle_RAMAddressAlwaysMasked(t *testing.T) {
	b := newFakeBus()
	// mode 3: lo=X, hi=Y, ST -> address X|Y<<8, masked to 15 bits
	s := State{IR: 0b110_011_00, D: 0x00, AC: 0x01, X: 0xFF, Y: 0xFF}
	res := Cycle(s, b, false)
	if res.WriteAddr > 0x7FFF {
		t.Fatalf("write address %#04x exceeds 15 bits", res.WriteAddr)
	}
}

func TestCycle_PCWrapsAt16Bits(t *testing.T) {
	b := newFakeBus()
	s := State{IR: 0b000_000_00, D: 0x00, PC: 0xFFFF}
	res := Cycle(s, b, false)
	if res.Next.PC != 0 {
		t.Fatalf("PC got %#04x want 0 (wraparound)", res.Next.PC)
	}
}
