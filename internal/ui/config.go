package ui

// Config contains window and input related settings.
type Config struct {
	Title     string // window title
	Scale     int    // integer upscaling factor
	ShowTiles bool   // show the VRAM tile sheet and registers next to the screen
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gbplayer"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
}
