// Package main implements gbplayer, a Game Boy emulator.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/ui"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) && !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exit.StatusStartup)
	}

	stdout := bufio.NewWriter(os.Stdout)
	status := run(opts, stdout)
	_ = stdout.Flush()
	os.Exit(status)
}

// run plays the ROM until the session ends and returns the process status.
func run(opts options, stdout *bufio.Writer) int {
	logger := emu.CreateLogger(opts.DebugCPU || opts.DebugRAM, opts.Quiet)

	m, err := newMachine(opts, stdout, logger)
	if err != nil {
		logger.Error("Startup failed", log.Err(err))
		return exit.StatusStartup
	}
	logger.Info("Starting", log.String("title", m.Name()))

	if opts.Headless {
		err = m.Run()
	} else {
		app := ui.NewApp(ui.Config{Title: "gbplayer: " + m.Name(), Scale: opts.Scale, ShowTiles: opts.DebugGPU}, m)
		err = app.Run()
	}
	return finish(opts, m, err, stdout)
}

func newMachine(opts options, stdout *bufio.Writer, logger *log.Logger) (*emu.Machine, error) {
	rom, err := cart.LoadFile(opts.ROMPath)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	cfg := emu.DefaultConfig()
	cfg.Headless = opts.Headless
	cfg.Silent = opts.Silent
	cfg.DebugCPU = opts.DebugCPU
	cfg.DebugGPU = opts.DebugGPU
	cfg.DebugRAM = opts.DebugRAM
	cfg.Frames = opts.Frames
	cfg.Profile = opts.Profile
	cfg.Turbo = opts.Turbo
	cfg.NoBoot = opts.NoBoot
	if opts.DebugCPU {
		cfg.Trace = stdout
	}
	if opts.BootROM != "" {
		if cfg.BootROM, err = os.ReadFile(opts.BootROM); err != nil {
			return nil, fmt.Errorf("reading boot image: %w", err)
		}
	}
	return emu.New(cfg, rom, logger)
}

// finish prints the reason the session ended and maps it to a status,
// applying the digest check when one was requested.
func finish(opts options, m *emu.Machine, err error, stdout *bufio.Writer) int {
	status := exit.StatusOf(err)
	class, ok := exit.ClassOf(err)
	if ok && class == exit.Controlled {
		fmt.Fprintln(stdout, err)
	} else {
		_ = stdout.Flush()
		fmt.Fprintln(os.Stderr, err)
	}

	if opts.Expect == "" || status != exit.StatusOK {
		return status
	}
	want, _ := parseDigest(opts.Expect)
	if got := m.Digest(); got != want {
		fmt.Fprintf(stdout, "digest mismatch: got %016x, want %016x\n", got, want)
		return exit.StatusTestFailed
	}
	return status
}
