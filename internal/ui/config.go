package ui

// Config contains window and output settings for the snapshot viewer.
type Config struct {
	Title  string // window title
	Scale  int    // integer upscaling factor
	OutDir string // directory screenshots are written to
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "pygb"
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.OutDir == "" {
		c.OutDir = "."
	}
}
