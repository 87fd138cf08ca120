// Package exit defines the outcomes that end an emulation session.
//
// A step either returns nil, meaning the session continues, or an *Error
// describing why it must stop and which process exit status to use.
package exit

import (
	"errors"
	"fmt"
	"time"
)

// Class groups termination reasons.
type Class int

const (
	// Controlled is a deliberate stop: quit, budget reached, or a test verdict.
	Controlled Class = iota
	// Guest means the running program did something undefined.
	Guest
	// Host means the emulator state or configuration is structurally invalid.
	Host
)

func (c Class) String() string {
	switch c {
	case Controlled:
		return "controlled"
	case Guest:
		return "guest"
	case Host:
		return "host"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Process exit statuses.
const (
	StatusOK         = 0
	StatusStartup    = 1
	StatusTestFailed = 2
	StatusGuest      = 3
	StatusHost       = 4
)

// Error is a terminal outcome.
type Error struct {
	Class  Class
	Status int
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

// Quit is a user requested exit.
func Quit() *Error {
	return &Error{Class: Controlled, Status: StatusOK, Msg: "User exited the emulator"}
}

// Timeout reports that the frame or time budget was reached.
func Timeout(frames int, elapsed time.Duration) *Error {
	secs := elapsed.Seconds()
	fps := 0.0
	if secs > 0 {
		fps = float64(frames) / secs
	}
	return &Error{
		Class:  Controlled,
		Status: StatusOK,
		Msg:    fmt.Sprintf("Emulated %5d frames in %5.2fs (%.0ffps)", frames, secs, fps),
	}
}

// TestPassed is the controlled stop after a test ROM reports success.
func TestPassed() *Error {
	return &Error{Class: Controlled, Status: StatusOK, Msg: "Unit test passed"}
}

// TestFailed is the controlled stop after a test ROM reports failure.
func TestFailed() *Error {
	return &Error{Class: Controlled, Status: StatusTestFailed, Msg: "Unit test failed"}
}

// InvalidOpcode reports an undefined instruction fetched at pc.
func InvalidOpcode(op byte, pc uint16) *Error {
	return &Error{
		Class:  Guest,
		Status: StatusGuest,
		Msg:    fmt.Sprintf("Invalid opcode: 0x%02X at 0x%04X", op, pc),
	}
}

// ROMBankOverflow reports a bank selection beyond the cartridge ROM.
func ROMBankOverflow(bank int, romSize int) *Error {
	return &Error{
		Class:  Host,
		Status: StatusHost,
		Msg:    fmt.Sprintf("Set rom_bank to 0x%02X (0x%06X) beyond ROM size 0x%06X", bank, bank*0x4000, romSize),
	}
}

// RAMBankOverflow reports a bank selection beyond the cartridge RAM.
func RAMBankOverflow(bank int, ramSize int) *Error {
	return &Error{
		Class:  Host,
		Status: StatusHost,
		Msg:    fmt.Sprintf("Set ram_bank to 0x%02X (0x%05X) beyond RAM size 0x%05X", bank, bank*0x2000, ramSize),
	}
}

// RAMWriteOverflow reports an external RAM store past the end of cartridge RAM.
func RAMWriteOverflow(bank int, offset int, ramSize int) *Error {
	return &Error{
		Class:  Host,
		Status: StatusHost,
		Msg:    fmt.Sprintf("Write to RAM bank 0x%02X offset 0x%04X >= ram size 0x%04X", bank, offset, ramSize),
	}
}

// StatusOf maps any error to a process exit status. Errors that are not an
// *Error are treated as host faults.
func StatusOf(err error) int {
	if err == nil {
		return StatusOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusHost
}

// ClassOf returns the class of err and whether err carried one.
func ClassOf(err error) (Class, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return Host, false
}
