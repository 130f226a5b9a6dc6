// Package bus wires the Gigatron's ROM, RAM, and IN register together
// and drives one CPU cycle at a time, dispatching sync-edge callbacks to
// the video and input layers exactly when the emulated OUT register
// toggles (spec §4.2, §5).
package bus

import (
	"math/rand/v2"

	"github.com/gigatron-emu/gigatron/internal/cpu"
	"github.com/gigatron-emu/gigatron/internal/rom"
	"github.com/gigatron-emu/gigatron/internal/video"
)

const (
	// RAMSize is the Gigatron's data memory: 32 768 bytes, always
	// addressed with a 15-bit mask (spec §3).
	RAMSize = 1 << 15

	// KeyboardAddr, KeyLatchAddr, and JoystickAddr are the memory-mapped
	// I/O bytes the input mapper writes (spec §3, §4.3).
	KeyboardAddr = 0x000F
	KeyLatchAddr = 0x0010
	JoystickAddr = 0x0011
)

// VSyncFunc is called once per vertical-sync edge, after the cycle that
// produced it has been fully applied. ram is the bus's own backing
// array, borrowed read-only for the duration of the call (spec §5:
// the renderer borrows RAM read-only).
type VSyncFunc func(ram *[RAMSize]byte)

// Bus owns RAM and the CPU state exclusively (spec §5) and is the only
// component with write access to either.
type Bus struct {
	rom *rom.Image
	ram [RAMSize]byte
	in  byte

	state cpu.State

	// t is the signed power-on reset counter from spec §3/§9: PC is
	// forced to 0 while t is negative, starting at -2 and released
	// after two cycles.
	t int64

	onVSync VSyncFunc
}

// New constructs a Bus bound to img with RAM and CPU state at their Go
// zero values. This mirrors the original implementation's split between
// a plain constructor and a separate power-on step: callers that want
// to model real hardware startup call Garble afterward; deterministic
// callers (tests, headless reproducibility runs) can skip it. onVSync
// may be nil.
func New(img *rom.Image, onVSync VSyncFunc) *Bus {
	return &Bus{rom: img, in: 0xFF, t: -2, onVSync: onVSync}
}

// Garble fills RAM and CPU registers with uniformly random bytes,
// modeling indeterminate hardware startup (spec §3, §9 "Garble"). Call
// it once, right after New, to reproduce the Gigatron's real power-on
// behavior.
func (b *Bus) Garble() {
	for i := range b.ram {
		b.ram[i] = byte(rand.IntN(256))
	}
	b.state = cpu.State{
		PC:    uint16(rand.IntN(1 << 16)),
		IR:    byte(rand.IntN(256)),
		D:     byte(rand.IntN(256)),
		AC:    byte(rand.IntN(256)),
		X:     byte(rand.IntN(256)),
		Y:     byte(rand.IntN(256)),
		Out:   byte(rand.IntN(256)),
		Undef: byte(rand.IntN(256)),
	}
}

// cpu.Bus interface implementation — ReadROM/ReadRAM/In are the only
// environment Cycle needs to compute the next state.

// ReadROM satisfies cpu.Bus.
func (b *Bus) ReadROM(pc uint16) (ir, d byte) { return b.rom.At(pc) }

// ReadRAM satisfies cpu.Bus; addr is expected already masked to 15 bits.
func (b *Bus) ReadRAM(addr uint16) byte { return b.ram[addr] }

// In satisfies cpu.Bus.
func (b *Bus) In() byte { return b.in }

// SetIn sets the host-to-Gigatron input register (spec §3). This
// emulator's ROM reads the joystick from memory rather than via IN
// (spec §4.3), so SetIn exists for completeness but is not on the
// input mapper's write path.
func (b *Bus) SetIn(v byte) { b.in = v }

// State returns the current CPU register tuple, primarily for tests and
// tracing.
func (b *Bus) State() cpu.State { return b.state }

// Step executes exactly one Gigatron cycle: runs cpu.Cycle, applies the
// RAM write (if any), detects the hSync/vSync edges on the OUT
// transition, and dispatches onVSync inline on a vertical-sync edge
// (spec §4.2, §5 — every cycle completes atomically with respect to
// frame updates).
func (b *Bus) Step() {
	reset := b.t < 0
	prevOut := b.state.Out

	res := cpu.Cycle(b.state, b, reset)
	if res.Write {
		b.ram[res.WriteAddr] = res.WriteByte
	}
	b.state = res.Next

	if video.VSyncEdge(prevOut, b.state.Out) && b.onVSync != nil {
		b.onVSync(&b.ram)
	}
	// HSyncEdge is observed for parity with the spec but triggers no
	// visible action in this emulator: the original implementation's own
	// per-hSync Undef reseed is commented out in its source, so Undef is
	// only ever set once, by Garble, and held constant afterward (spec
	// §9's "pick a value once" is satisfied at power-on, not every cycle).
	_ = video.HSyncEdge(prevOut, b.state.Out)

	b.t++
}

// WriteIOByte writes directly to a memory-mapped I/O byte such as the
// keyboard or joystick register (spec §4.3). It is the only RAM write
// path available to callers outside the CPU cycle, used by
// internal/input at the vsync poll point (spec §5: "the input mapper
// borrows RAM mutably only at the same poll point").
func (b *Bus) WriteIOByte(addr uint16, v byte) { b.ram[addr&0x7FFF] = v }

// ReadIOByte is the read counterpart of WriteIOByte, used by the input
// mapper to read back the previous joystick byte for edge detection.
func (b *Bus) ReadIOByte(addr uint16) byte { return b.ram[addr&0x7FFF] }
