// Package emu wires rom, bus, video, and input together into a single
// driver loop: power-on reset, continuous cycle execution, frame
// dispatch (spec §2, §5).
package emu

import (
	"log"

	"github.com/gigatron-emu/gigatron/internal/bus"
	"github.com/gigatron-emu/gigatron/internal/input"
	"github.com/gigatron-emu/gigatron/internal/rom"
	"github.com/gigatron-emu/gigatron/internal/video"
)

// Buttons is the host's joystick/keyboard sample for one poll, handed
// to the Machine once per rendered frame (spec §4.3: input polling
// cadence is once per rendered frame).
type Buttons struct {
	Up, Down, Left, Right           bool
	Start, Select, ButtonA, ButtonB bool
	Char                            rune // a pressed printable character, or 0
}

// Machine is the top-level driver: it owns the bus (and therefore RAM
// and CPU state), renders frames on vsync edges, and applies host input
// at the same poll point (spec §5).
type Machine struct {
	cfg Config
	bus *bus.Bus
	in  *input.Mapper

	scaleW, scaleH int
	fb             []byte // RGBA, scaleW*scaleH*4

	pending Buttons
	frames  int64

	romPath string
}

// New constructs a Machine with no ROM loaded. LoadROM must be called
// before StepCycle/StepFrame.
func New(cfg Config, surfaceW, surfaceH int) *Machine {
	if surfaceW <= 0 {
		surfaceW = video.Width * 4
	}
	if surfaceH <= 0 {
		surfaceH = video.Height * 4
	}
	return &Machine{
		cfg:    cfg,
		in:     input.NewMapper(),
		scaleW: surfaceW,
		scaleH: surfaceH,
		fb:     make([]byte, surfaceW*surfaceH*4),
	}
}

// LoadROM parses and binds a ROM image (spec §6: rejection is a fatal
// error at the CLI boundary, not here — this returns the plain error).
// It does not garble RAM/CPU state; call PowerOn for that.
func (m *Machine) LoadROM(path string) error {
	img, err := rom.Load(path)
	if err != nil {
		return err
	}
	m.romPath = path
	m.bus = bus.New(img, m.onVSync)
	return nil
}

// PowerOn fills RAM and CPU state with uniformly random bytes, modeling
// the Gigatron's indeterminate hardware startup (spec §3 Lifecycles).
// Callers that want reproducible runs (golden-frame tests, headless CI)
// should skip it and rely on the post-LoadROM zero state instead.
func (m *Machine) PowerOn() {
	if m.bus != nil {
		m.bus.Garble()
	}
}

// ROMPath returns the path last loaded by LoadROM, or "" if none.
func (m *Machine) ROMPath() string { return m.romPath }

// SetButtons records the host's current joystick/keyboard sample to be
// applied at the next vsync poll point.
func (m *Machine) SetButtons(b Buttons) { m.pending = b }

// onVSync is bus.VSyncFunc: render the frame and poll input, both
// inline within the cycle that produced the edge (spec §5).
func (m *Machine) onVSync(ram *[bus.RAMSize]byte) {
	video.RenderFrame(ramView{ram}, m.fb, m.scaleW, m.scaleH)
	m.in.Poll(m.bus, m.pending.Char, input.Priority(
		m.pending.Up, m.pending.Down, m.pending.Left, m.pending.Right,
		m.pending.Start, m.pending.Select, m.pending.ButtonB, m.pending.ButtonA,
	))
	m.pending.Char = 0
	m.frames++
}

// ramView adapts the bus's raw RAM array to video.RAM without copying.
type ramView struct {
	ram *[bus.RAMSize]byte
}

func (v ramView) ReadRAM(addr uint16) byte { return v.ram[addr] }

// StepCycle executes exactly one Gigatron cycle.
func (m *Machine) StepCycle() {
	if m.cfg.Trace {
		s := m.bus.State()
		log.Printf("PC=%04X IR=%02X D=%02X AC=%02X X=%02X Y=%02X OUT=%02X", s.PC, s.IR, s.D, s.AC, s.X, s.Y, s.Out)
	}
	m.bus.Step()
}

// StepFrame runs cycles until at least one vertical-sync edge has fired,
// i.e. until the emulated program produces its next frame. Frame rate is
// whatever the ROM produces (spec §9); this does not impose a fixed fps.
func (m *Machine) StepFrame() {
	start := m.frames
	for m.frames == start {
		m.StepCycle()
	}
}

// Framebuffer returns the host-surface-sized RGBA buffer last written by
// a vsync render.
func (m *Machine) Framebuffer() []byte { return m.fb }

// FrameCount returns the number of vertical-sync edges observed so far.
func (m *Machine) FrameCount() int64 { return m.frames }
