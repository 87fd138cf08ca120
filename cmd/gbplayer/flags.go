package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errUsage = errors.New("missing ROM path")

type options struct {
	ROMPath  string
	BootROM  string
	Headless bool
	Silent   bool
	DebugCPU bool
	DebugGPU bool
	DebugRAM bool
	Frames   int
	Profile  int
	Turbo    bool
	NoBoot   bool
	Scale    int
	Expect   string // expected VRAM/OAM digest in hex
	Quiet    bool
}

func newFlagSet(opts *options, output io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet("gbplayer", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window")
	flags.BoolVar(&opts.Silent, "silent", false, "disable sound (there is no audio output)")
	flags.BoolVar(&opts.DebugCPU, "debug-cpu", false, "dump registers before every instruction and log interrupt dispatch")
	flags.BoolVar(&opts.DebugGPU, "debug-gpu", false, "show registers over the tile view")
	flags.BoolVar(&opts.DebugRAM, "debug-ram", false, "log bank switching")
	flags.IntVar(&opts.Frames, "frames", 0, "exit after N frames")
	flags.IntVar(&opts.Profile, "profile", 0, "exit after N seconds")
	flags.BoolVar(&opts.Turbo, "turbo", false, "no sleep between frames")
	flags.BoolVar(&opts.NoBoot, "noboot", false, "skip the boot image")
	flags.StringVar(&opts.BootROM, "boot", "", "optional 256 byte DMG boot image")
	flags.IntVar(&opts.Scale, "scale", 3, "window scale")
	flags.StringVar(&opts.Expect, "expect", "", "assert the final VRAM/OAM digest (hex)")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
	return flags
}

// parseFlags parses args (without the program name). The ROM path is the
// single positional argument.
func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	flags := newFlagSet(&opts, output)
	if err := flags.Parse(args); err != nil {
		return opts, err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return opts, errUsage
	}
	if len(rest) > 1 {
		return opts, fmt.Errorf("unexpected argument %q after ROM path, options must come first", rest[1])
	}
	opts.ROMPath = rest[0]

	if opts.Frames < 0 || opts.Profile < 0 {
		return opts, errors.New("frame and profile limits must not be negative")
	}
	if opts.Expect != "" {
		if _, err := parseDigest(opts.Expect); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// parseDigest accepts the digest with or without a 0x prefix.
func parseDigest(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid digest %q: %w", s, err)
	}
	return v, nil
}
