// Package cpu implements the SM83 processor: register file, ALU, the two
// opcode tables and the interrupt, timer and DMA logic serviced every tick.
package cpu

import (
	"io"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"
	"github.com/retroenv/retrogolib/log"
)

// CPU runs at 1MHz ticks; each tick stands for four hardware clocks.
type CPU struct {
	regs Registers

	IME  bool
	halt bool
	stop bool

	// owed is the number of ticks the last instruction still occupies.
	owed  int
	cycle uint64

	bus    *bus.Bus
	logger *log.Logger
	debug  bool
	trace  io.Writer
}

// New creates a CPU wired to b. The CPU starts at 0x0000, where the bus maps
// the boot overlay, and registers itself as the serial interrupt source.
func New(b *bus.Bus, logger *log.Logger) *CPU {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}
	c := &CPU{bus: b, logger: logger}
	b.SetSerialHook(func() { c.RaiseInterrupt(IntSerial) })
	return c
}

// ResetNoBoot sets registers to the DMG post-boot state and unmaps the boot
// overlay, leaving PC at the cartridge entry point.
func (c *CPU) ResetNoBoot() {
	c.regs.SetAF(0x01B0)
	c.regs.SetBC(0x0013)
	c.regs.SetDE(0x00D8)
	c.regs.SetHL(0x014D)
	c.regs.SP = 0xFFFE
	c.regs.PC = 0x0100
	c.IME = false
	c.halt = false
	c.stop = false
	c.owed = 0
	c.bus.Write(bus.LCDC, 0x91)
	c.bus.Write(bus.BGP, 0xFC)
	c.bus.SkipBoot()
}

// SetTrace enables the per-instruction register dump to w. A nil w disables it.
func (c *CPU) SetTrace(w io.Writer) { c.trace = w }

// SetDebug enables interrupt dispatch logging.
func (c *CPU) SetDebug(on bool) { c.debug = on }

// Regs exposes the register file for tools and tests.
func (c *CPU) Regs() *Registers { return &c.regs }

// Bus exposes the underlying bus for tests/tools.
func (c *CPU) Bus() *bus.Bus { return c.bus }

// Halted reports whether HALT is waiting for a pending interrupt.
func (c *CPU) Halted() bool { return c.halt }

// Stopped reports whether STOP is waiting for a key press.
func (c *CPU) Stopped() bool { return c.stop }

// SetStop sets or clears the stopped state; the input unit clears it on a key press.
func (c *CPU) SetStop(stop bool) { c.stop = stop }

// Cycle returns the number of ticks executed so far.
func (c *CPU) Cycle() uint64 { return c.cycle }

// Step advances the CPU by one tick. A nil error means the session continues;
// otherwise the error is an *exit.Error naming why emulation must end.
func (c *CPU) Step() error {
	c.tickDMA()
	c.tickTimer()
	c.tickInterrupts()

	switch {
	case c.halt || c.stop:
	case c.owed > 0:
		c.owed--
	default:
		if err := c.execute(); err != nil {
			return err
		}
	}
	return c.bus.Err()
}

// execute fetches, decodes and runs one instruction and charges its cost.
func (c *CPU) execute() error {
	if c.trace != nil {
		c.dump(c.trace)
	}

	pc := c.regs.PC
	op := c.bus.Read(pc)
	if op == 0xCB {
		cb := c.bus.Read(pc + 1)
		c.regs.PC += 2
		c.execCB(cb)
		c.owed = cbCycles[cb]
	} else {
		n := argLen[argTypes[op]]
		var arg uint16
		switch n {
		case 1:
			arg = uint16(c.bus.Read(pc + 1))
		case 2:
			arg = uint16(c.bus.Read(pc+1)) | uint16(c.bus.Read(pc+2))<<8
		}
		c.regs.PC += 1 + n
		if err := c.exec(op, arg, pc); err != nil {
			return err
		}
		c.owed = opCycles[op]
	}
	// this tick counts as the first; HALT and STOP cost nothing
	if c.owed > 0 {
		c.owed--
	}
	return nil
}

func (c *CPU) push16(v uint16) {
	c.bus.Write(c.regs.SP-1, byte(v>>8))
	c.bus.Write(c.regs.SP-2, byte(v))
	c.regs.SP -= 2
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.bus.Read(c.regs.SP))
	hi := uint16(c.bus.Read(c.regs.SP + 1))
	c.regs.SP += 2
	return hi<<8 | lo
}

// get8 reads an operand by its 3-bit selector, going through the bus for (HL).
func (c *CPU) get8(sel byte) byte {
	if sel&7 == operandHL {
		return c.bus.Read(c.regs.HL())
	}
	return c.regs.r[sel&7]
}

func (c *CPU) set8(sel byte, v byte) {
	if sel&7 == operandHL {
		c.bus.Write(c.regs.HL(), v)
		return
	}
	c.regs.r[sel&7] = v
}
