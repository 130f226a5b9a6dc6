// Command gigatronrun drives the emulator headlessly for a fixed number
// of frames, then optionally dumps the framebuffer to a PNG and/or
// checks it against an expected CRC32 — useful for golden-frame tests
// and CI smoke runs against known ROMs.
package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gigatron-emu/gigatron/internal/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM image (131072 bytes)")
	frames := flag.Int("frames", 60, "frames to run")
	pngOut := flag.String("outpng", "", "write the last framebuffer to PNG at this path")
	expect := flag.String("expect", "", "assert framebuffer CRC32 (hex, with or without 0x)")
	powerOn := flag.Bool("poweron", false, "garble RAM and CPU state at startup; off by default for reproducible runs")
	trace := flag.Bool("trace", false, "log PC/IR/D/AC/X/Y/OUT every cycle (very verbose)")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	if *frames <= 0 {
		*frames = 1
	}

	m := emu.New(emu.Config{Trace: *trace}, 160, 120)
	if err := m.LoadROM(*romPath); err != nil {
		log.Fatalf("load rom: %v", err)
	}
	if *powerOn {
		m.PowerOn()
	}

	start := time.Now()
	for i := 0; i < *frames; i++ {
		m.StepFrame()
	}
	dur := time.Since(start)

	fb := m.Framebuffer() // RGBA 160x120*4
	crc := crc32.ChecksumIEEE(fb)
	fps := float64(*frames) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		*frames, dur.Truncate(time.Millisecond), fps, crc)

	if *pngOut != "" {
		if err := saveFramePNG(fb, 160, 120, *pngOut); err != nil {
			log.Fatalf("write PNG: %v", err)
		}
		log.Printf("wrote %s", *pngOut)
	}

	if *expect != "" {
		want := strings.TrimPrefix(strings.ToLower(*expect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			log.Fatalf("checksum mismatch: got %s, want %s", got, want)
		}
	}
}

func saveFramePNG(pix []byte, w, h int, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
