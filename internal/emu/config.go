package emu

import (
	"io"

	"github.com/retroenv/retrogolib/log"
)

// Config contains settings that affect emulation behavior.
type Config struct {
	Headless bool // no window; the machine runs its own loop
	Silent   bool // accepted for compatibility, there is no audio output

	DebugCPU bool // log interrupt dispatch
	DebugGPU bool // show the tile sheet next to the screen
	DebugRAM bool // log bank switching

	Frames  int  // stop after this many frames, 0 for no limit
	Profile int  // stop after this many seconds, 0 for no limit
	Turbo   bool // never sleep between frames
	NoBoot  bool // start at the cartridge entry point

	BootROM []byte    // optional 256 byte boot image replacing the built-in one
	Trace   io.Writer // per-instruction register dump, nil disables it
}

// DefaultConfig returns the configuration used when no flags are given:
// windowed, paced to 60 frames per second, starting in the boot image.
func DefaultConfig() Config {
	return Config{}
}

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
