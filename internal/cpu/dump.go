package cpu

import (
	"fmt"
	"io"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"
)

// flagChar returns upper case when set, lower case when clear.
func flagChar(ch byte, set bool) byte {
	if set {
		return ch - ('a' - 'A')
	}
	return ch
}

// interruptChar shows '_' for a disabled line, otherwise the line letter in
// upper case when its flag is raised.
func interruptChar(ch byte, ie, iflag byte, line Interrupt) byte {
	if ie&byte(line) == 0 {
		return '_'
	}
	return flagChar(ch, iflag&byte(line) != 0)
}

// dump writes one trace line describing the registers and the instruction
// about to execute:
//
//	AF   BC   DE   HL   : SP   = (SP) : znhc : vltsj : PC   = op : mnemonic
func (c *CPU) dump(w io.Writer) {
	r := &c.regs
	sp := uint16(c.bus.Read(r.SP)) | uint16(c.bus.Read(r.SP+1))<<8
	ie := c.bus.Read(bus.IE)
	iflag := c.bus.Read(bus.IF)

	flags := []byte{
		flagChar('z', r.flag(flagZ)),
		flagChar('n', r.flag(flagN)),
		flagChar('h', r.flag(flagH)),
		flagChar('c', r.flag(flagC)),
	}
	ints := []byte{
		interruptChar('v', ie, iflag, IntVBlank),
		interruptChar('l', ie, iflag, IntStat),
		interruptChar('t', ie, iflag, IntTimer),
		interruptChar('s', ie, iflag, IntSerial),
		interruptChar('j', ie, iflag, IntJoypad),
	}

	op := c.bus.Read(r.PC)
	code := []byte{op}
	if op == 0xCB {
		op = c.bus.Read(r.PC + 1)
		code = append(code, op)
	} else {
		for i := uint16(1); i <= argLen[argTypes[op]]; i++ {
			code = append(code, c.bus.Read(r.PC+i))
		}
	}

	fmt.Fprintf(w, "%04X %04X %04X %04X : %04X = %04X : %s : %s : %04X = %02X : %s\n",
		r.AF(), r.BC(), r.DE(), r.HL(),
		r.SP, sp,
		flags, ints,
		r.PC, op, Disassemble(code))
}
