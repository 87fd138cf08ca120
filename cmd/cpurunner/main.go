// Package main implements cpurunner, a headless harness for test ROMs that
// report their result over the serial port.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	steps := flags.Int("steps", 50_000_000, "max ticks to run")
	timeout := flags.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	trace := flags.Bool("trace", false, "dump registers before every instruction")
	echo := flags.Bool("echo", true, "copy serial output to stdout")
	window := flags.Int("serialWindow", 8192, "number of recent serial bytes to print on failure")
	bootPath := flags.String("boot", "", "optional DMG boot image; without one the ROM starts at 0x0100")
	quiet := flags.Bool("q", false, "only log errors")
	_ = flags.Parse(os.Args[1:])

	if flags.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: cpurunner [options] <rom>\n\n")
		flags.PrintDefaults()
		os.Exit(exit.StatusStartup)
	}

	stdout := bufio.NewWriter(os.Stdout)
	status := run(flags.Arg(0), *bootPath, *steps, *timeout, *trace, *echo, *window, *quiet, stdout)
	_ = stdout.Flush()
	os.Exit(status)
}

func run(romPath, bootPath string, steps int, timeout time.Duration,
	trace, echo bool, window int, quiet bool, stdout *bufio.Writer) int {

	logger := emu.CreateLogger(false, quiet)
	rom, err := cart.LoadFile(romPath)
	if err != nil {
		logger.Error("Loading ROM failed", log.Err(err))
		return exit.StatusStartup
	}

	cfg := emu.DefaultConfig()
	cfg.Headless = true
	cfg.Turbo = true
	if bootPath == "" {
		cfg.NoBoot = true
	} else if cfg.BootROM, err = os.ReadFile(bootPath); err != nil {
		logger.Error("Reading boot image failed", log.Err(err))
		return exit.StatusStartup
	}
	if trace {
		cfg.Trace = stdout
	}

	m, err := emu.New(cfg, rom, logger)
	if err != nil {
		logger.Error("Creating machine failed", log.Err(err))
		return exit.StatusStartup
	}

	mon := newMonitor(window)
	var serial io.Writer = mon
	if echo {
		serial = io.MultiWriter(stdout, mon)
	}
	m.SetSerialWriter(serial)

	start := time.Now()
	result, ticks := drive(m, mon, steps, timeout)
	elapsed := time.Since(start).Truncate(time.Millisecond)

	status := report(stdout, result, mon)
	fmt.Fprintf(stdout, "\nDone: ticks=%d frames=%d elapsed=%s\n", ticks, m.Frame(), elapsed)
	return status
}

// outcome is how a harness run ended.
type outcome struct {
	verdict verdict
	err     error // set when the machine ended the session
}

// drive ticks m until the monitor sees a verdict, the machine stops, or a
// budget runs out. It checks the wall clock once per frame.
func drive(m *emu.Machine, mon *monitor, steps int, timeout time.Duration) (outcome, int) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for i := 0; i < steps; i++ {
		if err := m.Tick(); err != nil {
			return outcome{err: err}, i + 1
		}
		if v := mon.Verdict(); v != verdictNone {
			return outcome{verdict: v}, i + 1
		}
		if !deadline.IsZero() && i%framePeriod == 0 && time.Now().After(deadline) {
			return outcome{verdict: verdictTimeout}, i + 1
		}
	}
	return outcome{verdict: verdictTimeout}, steps
}

func report(w io.Writer, result outcome, mon *monitor) int {
	if result.err != nil {
		fmt.Fprintf(w, "\n%v\n", result.err)
		return exit.StatusOf(result.err)
	}

	switch result.verdict {
	case verdictPassed:
		fmt.Fprintf(w, "\nDetected PASS in serial output.\n")
		if s := mon.Stage(); s != "" {
			fmt.Fprintf(w, "Last stage seen: %s\n", s)
		}
		return exit.StatusOK

	case verdictFailed:
		fmt.Fprintf(w, "\nDetected %s in serial output.\n", mon.Summary())
		if s := mon.Stage(); s != "" {
			fmt.Fprintf(w, "Last stage seen: %s\n", s)
		}
		fmt.Fprintf(w, "\n--- recent serial ---\n%s\n--- end serial ---\n", mon.Tail())
		return exit.StatusTestFailed

	default:
		fmt.Fprintf(w, "\nNo result before the budget ran out.\n")
		return exit.StatusTestFailed
	}
}
