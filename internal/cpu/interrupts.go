package cpu

import (
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"
	"github.com/retroenv/retrogolib/log"
)

// Interrupt is a bit in the IE and IF registers.
type Interrupt byte

const (
	IntVBlank Interrupt = 1 << iota
	IntStat
	IntTimer
	IntSerial
	IntJoypad
)

// handlers lists the interrupt lines in priority order with their vectors.
var handlers = [5]struct {
	line   Interrupt
	vector uint16
}{
	{IntVBlank, 0x0040},
	{IntStat, 0x0048},
	{IntTimer, 0x0050},
	{IntSerial, 0x0058},
	{IntJoypad, 0x0060},
}

// timerPeriods maps TAC clock select to ticks per TIMA increment.
var timerPeriods = [4]uint64{256, 4, 16, 64}

const (
	divPeriod  = 64
	tacEnable  = 1 << 2
	dmaLength  = bus.OAMSize
	oamAddress = bus.OAMStart
)

// RaiseInterrupt requests line by setting its IF bit. Any raised line ends
// HALT, whether or not it will be dispatched.
func (c *CPU) RaiseInterrupt(line Interrupt) {
	c.bus.Or(bus.IF, byte(line))
	c.halt = false
}

// tickInterrupts dispatches at most one pending, enabled interrupt.
func (c *CPU) tickInterrupts() {
	queue := c.bus.Read(bus.IE) & c.bus.Read(bus.IF)
	if !c.IME || queue == 0 {
		return
	}
	if c.debug {
		c.logger.Debug("Handling interrupts",
			log.Hex("ie", c.bus.Read(bus.IE)), log.Hex("if", c.bus.Read(bus.IF)))
	}
	c.IME = false
	for _, h := range handlers {
		if queue&byte(h.line) == 0 {
			continue
		}
		c.push16(c.regs.PC)
		c.regs.PC = h.vector
		c.bus.And(bus.IF, ^byte(h.line))
		return
	}
}

// tickTimer advances the free running counter, DIV and, when enabled, TIMA.
func (c *CPU) tickTimer() {
	c.cycle++

	if c.cycle%divPeriod == 0 {
		c.bus.Inc(bus.DIV)
	}

	tac := c.bus.Read(bus.TAC)
	if tac&tacEnable == 0 {
		return
	}
	if c.cycle%timerPeriods[tac&0x03] != 0 {
		return
	}
	if c.bus.Read(bus.TIMA) == 0xFF {
		c.bus.Write(bus.TIMA, c.bus.Read(bus.TMA))
		c.RaiseInterrupt(IntTimer)
		return
	}
	c.bus.Inc(bus.TIMA)
}

// tickDMA copies 160 bytes into OAM in one tick when the DMA register is set.
func (c *CPU) tickDMA() {
	page := c.bus.Read(bus.DMA)
	if page == 0 {
		return
	}
	src := uint16(page) << 8
	for i := uint16(0); i < dmaLength; i++ {
		c.bus.Write(oamAddress+i, c.bus.Read(src+i))
	}
	c.bus.Write(bus.DMA, 0)
}
