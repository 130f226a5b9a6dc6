// Package cpu implements the Gigatron's cycle-accurate instruction core:
// an eight-opcode, eight-addressing-mode machine with no instruction-set
// abstraction layer above the gate level. Cycle is pure — it never
// mutates RAM itself, so bus.Bus performs the write after the fact and
// cpu stays trivially unit-testable.
package cpu

// State is the CPU register tuple from spec §3. IR and D form the
// instruction fetched the *previous* cycle (the Gigatron always executes
// one cycle behind its own fetch).
type State struct {
	PC    uint16
	IR    byte
	D     byte
	AC    byte
	X     byte
	Y     byte
	Out   byte
	Undef byte
}

// Bus is the read side of the environment a Cycle needs: ROM fetch, RAM
// read, and the host input register. Write-back to RAM is the caller's
// job (see Result.Write).
type Bus interface {
	ReadROM(pc uint16) (ir, d byte)
	ReadRAM(addr uint16) byte
	In() byte
}

// Result is everything a Cycle produces beyond the next State: whether
// this cycle writes to RAM, and if so, where and what.
type Result struct {
	Next      State
	Write     bool
	WriteAddr uint16
	WriteByte byte
}

// instruction fields, decoded from the IR fetched last cycle.
const (
	insLD  = 0
	insAND = 1
	insOR  = 2
	insXOR = 3
	insADD = 4
	insSUB = 5
	insST  = 6
	insJMP = 7
)

// target identifies which register (if any) receives the ALU result.
type target int

const (
	targetNone target = iota
	targetAC
	targetX
	targetY
	targetOut
)

// Cycle computes the next CPU state from the current state S and the
// ROM/RAM/IN environment, following spec §4.1 exactly. reset forces
// Next.PC to 0 regardless of the computed jump target (spec §3, §9: the
// power-on reset signal asserted while the cycle counter is negative).
func Cycle(s State, bus Bus, reset bool) Result {
	next := s
	next.IR, next.D = bus.ReadROM(s.PC)

	ins := (s.IR >> 5) & 7
	mode := (s.IR >> 2) & 7
	busSel := s.IR & 3
	write := ins == insST
	jump := ins == insJMP

	// Address and writeback target decoding (spec §4.1 mode table).
	var lo, hi byte = s.D, 0
	var to target
	incX := false
	if !jump {
		switch mode {
		case 0:
			to = enable(write, targetAC)
		case 1:
			to = enable(write, targetAC)
			lo = s.X
		case 2:
			to = enable(write, targetAC)
			hi = s.Y
		case 3:
			to = enable(write, targetAC)
			lo, hi = s.X, s.Y
		case 4:
			to = targetX
		case 5:
			to = targetY
		case 6:
			to = enable(write, targetOut)
		case 7:
			to = enable(write, targetOut)
			lo, hi = s.X, s.Y
			incX = true
		}
	}
	addr := (uint16(hi) << 8) | uint16(lo)

	// Bus source (spec §4.1 "Bus source"). bus=1 with a simultaneous
	// write is the ambiguous hardware case from spec §9's Open Question:
	// we define B there as Undef rather than as the stale RAM read,
	// since the bus line is driven by the written source, not by RAM.
	var b byte
	switch busSel {
	case 0:
		b = s.D
	case 1:
		if write {
			b = s.Undef
		} else {
			b = bus.ReadRAM(addr & 0x7FFF)
		}
	case 2:
		b = s.AC
	case 3:
		b = bus.In()
	}

	// ALU (spec §4.1). ST's result (AC) reaches a register only through
	// the mode-4/5 X/Y writeback; the RAM write below stores the bus
	// value B. Bcc/JMP's result is computed but never stored.
	var alu byte
	switch ins {
	case insLD:
		alu = b
	case insAND:
		alu = s.AC & b
	case insOR:
		alu = s.AC | b
	case insXOR:
		alu = s.AC ^ b
	case insADD:
		alu = s.AC + b
	case insSUB:
		alu = s.AC - b
	case insST:
		alu = s.AC
	case insJMP:
		alu = -s.AC
	}

	switch to {
	case targetAC:
		next.AC = alu
	case targetX:
		next.X = alu
	case targetY:
		next.Y = alu
	case targetOut:
		next.Out = alu
	}
	if incX {
		next.X = s.X + 1
	}

	// PC update (spec §4.1 "PC update").
	next.PC = s.PC + 1
	if jump {
		if mode == 0 {
			next.PC = (uint16(s.Y) << 8) | uint16(b)
		} else {
			cond := (s.AC >> 7) + 2*b2u(s.AC == 0)
			if mode&(1<<cond) != 0 {
				next.PC = (s.PC & 0xFF00) | uint16(b)
			}
		}
	}

	if reset {
		next.PC = 0
	}

	res := Result{Next: next}
	if write {
		res.Write = true
		res.WriteAddr = addr & 0x7FFF
		res.WriteByte = b
	}
	return res
}

// enable models the Gigatron's write-suppression gate: a RAM write
// consumes the bus, so AC/OUT writeback is disabled on the same cycle
// (spec §3 invariant), but X/Y writeback (modes 4, 5, and the mode-7
// auto-increment) is never suppressed.
func enable(write bool, t target) target {
	if write {
		return targetNone
	}
	return t
}

func b2u(b bool) byte {
	if b {
		return 1
	}
	return 0
}
