package emu

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace bool // log each cycle's PC/IR/D (verbose; intended for short runs)
}
