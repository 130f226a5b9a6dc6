// Package ui implements the windowed front-end: an ebiten.Game that
// polls host keyboard input into emu.Buttons once per Update and blits
// the Machine's framebuffer once per Draw (spec §6, §5).
package ui

import (
	"github.com/gigatron-emu/gigatron/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// App is the ebiten.Game implementation wrapping a Machine. Unlike a
// typical emulator front-end it carries no menu, audio, or save-state
// state: the Gigatron has no sound (Non-goal) and this emulator loads
// exactly one ROM, chosen on the command line, for its whole run.
type App struct {
	cfg Config
	m   *emu.Machine
	tex *ebiten.Image
}

// NewApp wires cfg and an already-ROM-loaded Machine into a runnable
// ebiten.Game.
func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(160*cfg.Scale, 120*cfg.Scale)
	return &App{cfg: cfg, m: m}
}

// Run starts the ebiten event loop; it blocks until the window closes.
func (a *App) Run() error { return ebiten.RunGame(a) }

// keymap pairs a host key with the Buttons field it drives.
var keymap = []struct {
	key ebiten.Key
	set func(*emu.Buttons)
}{
	{ebiten.KeyArrowUp, func(b *emu.Buttons) { b.Up = true }},
	{ebiten.KeyArrowDown, func(b *emu.Buttons) { b.Down = true }},
	{ebiten.KeyArrowLeft, func(b *emu.Buttons) { b.Left = true }},
	{ebiten.KeyArrowRight, func(b *emu.Buttons) { b.Right = true }},
	{ebiten.KeyEnter, func(b *emu.Buttons) { b.Start = true }},
	{ebiten.KeyBackspace, func(b *emu.Buttons) { b.Select = true }},
	{ebiten.KeySpace, func(b *emu.Buttons) { b.ButtonA = true }},
	{ebiten.KeyTab, func(b *emu.Buttons) { b.ButtonB = true }},
}

// Update samples host input and runs the machine forward exactly one
// rendered frame (spec §4.3: polling is once per rendered frame; spec
// §9: frame rate follows whatever the ROM's own vSync cadence is, so
// Update does not try to pace itself against ebiten's tick rate).
func (a *App) Update() error {
	var btn emu.Buttons
	for _, k := range keymap {
		if ebiten.IsKeyPressed(k.key) {
			k.set(&btn)
		}
	}
	if chars := ebiten.AppendInputChars(nil); len(chars) > 0 {
		btn.Char = chars[len(chars)-1]
	}
	a.m.SetButtons(btn)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.m.StepFrame()
	return nil
}

// Draw blits the machine's framebuffer onto the screen at the
// Gigatron's native 160x120 resolution; ebiten handles the upscale to
// the actual window size set from cfg.Scale.
func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(160, 120)
	}
	a.tex.WritePixels(a.m.Framebuffer())
	screen.DrawImage(a.tex, nil)
}

// Layout reports the Gigatron's native resolution; it never changes at
// runtime since the Gigatron has no dynamic display mode.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 160, 120
}
