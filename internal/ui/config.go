package ui

// Config contains window-related settings. The Gigatron has no audio
// output and no ROM browser (spec Non-goals), so this is much smaller
// than a typical emulator front-end's config.
type Config struct {
	Title string // window title
	Scale int    // integer upscaling factor applied to the 160x120 frame
	Trace bool   // not read by App; cycle tracing is set through emu.Config.Trace
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gigatron"
	}
	if c.Scale <= 0 {
		c.Scale = 4
	}
}
