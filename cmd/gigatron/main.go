// Command gigatron is the windowed front-end: it loads a ROM image and
// runs it in an ebiten window until closed.
package main

import (
	"flag"
	"log"

	"github.com/gigatron-emu/gigatron/internal/emu"
	"github.com/gigatron-emu/gigatron/internal/ui"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM image (131072 bytes)")
	scale := flag.Int("scale", 4, "integer window upscale factor")
	title := flag.String("title", "gigatron", "window title")
	trace := flag.Bool("trace", false, "log PC/IR/D/AC/X/Y/OUT every cycle (verbose)")
	powerOn := flag.Bool("poweron", true, "garble RAM and CPU state at startup, modeling real hardware power-on")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}

	m := emu.New(emu.Config{Trace: *trace}, 160, 120)
	if err := m.LoadROM(*romPath); err != nil {
		log.Fatalf("load rom: %v", err)
	}
	if *powerOn {
		m.PowerOn()
	}

	app := ui.NewApp(ui.Config{Title: *title, Scale: *scale, Trace: *trace}, m)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
