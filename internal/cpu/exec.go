package cpu

import (
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
)

// opFunc executes a base opcode. arg holds the decoded argument bytes.
type opFunc func(c *CPU, op byte, arg uint16) error

// baseOps holds handlers for every base opcode outside the LD r,r' and ALU
// register blocks, which exec decodes by range. nil entries are undefined.
var baseOps = buildBaseOps()

func (c *CPU) exec(op byte, arg uint16, pc uint16) error {
	switch {
	case op == 0x76:
		c.halt = true
	case op >= 0x40 && op < 0x80:
		c.set8(op>>3, c.get8(op))
	case op >= 0x80 && op < 0xC0:
		aluOps[(op>>3)&7](c, c.get8(op))
	default:
		h := baseOps[op]
		if h == nil {
			return exit.InvalidOpcode(op, pc)
		}
		return h(c, op, arg)
	}
	return nil
}

// cond evaluates the 2-bit condition field at bits 3-4: NZ, Z, NC, C.
func (c *CPU) cond(op byte) bool {
	switch (op >> 3) & 3 {
	case 0:
		return !c.regs.flag(flagZ)
	case 1:
		return c.regs.flag(flagZ)
	case 2:
		return !c.regs.flag(flagC)
	default:
		return c.regs.flag(flagC)
	}
}

func (c *CPU) jr(arg uint16) { c.regs.PC = uint16(int(c.regs.PC) + int(int8(arg))) }

func (c *CPU) call(addr uint16) {
	c.push16(c.regs.PC)
	c.regs.PC = addr
}

// do adapts a handler that cannot fail.
func do(fn func(c *CPU, op byte, arg uint16)) opFunc {
	return func(c *CPU, op byte, arg uint16) error {
		fn(c, op, arg)
		return nil
	}
}

func buildBaseOps() [256]opFunc {
	var t [256]opFunc

	t[0x00] = do(func(c *CPU, op byte, arg uint16) {})
	t[0x10] = do(func(c *CPU, op byte, arg uint16) { c.stop = true })
	t[0x08] = do(func(c *CPU, op byte, arg uint16) {
		c.bus.Write(arg+1, byte(c.regs.SP>>8))
		c.bus.Write(arg, byte(c.regs.SP))
	})

	// 16-bit register pair loads and arithmetic
	for rp := byte(0); rp < 4; rp++ {
		base := rp << 4
		t[base|0x01] = do(func(c *CPU, op byte, arg uint16) { c.regs.setRP(op>>4, arg) })
		t[base|0x03] = do(func(c *CPU, op byte, arg uint16) { c.regs.setRP(op>>4, c.regs.rp(op>>4)+1) })
		t[base|0x0B] = do(func(c *CPU, op byte, arg uint16) { c.regs.setRP(op>>4, c.regs.rp(op>>4)-1) })
		t[base|0x09] = do(func(c *CPU, op byte, arg uint16) { c.addHL(c.regs.rp(op >> 4)) })
	}

	// indirect accumulator loads and stores
	t[0x02] = do(func(c *CPU, op byte, arg uint16) { c.bus.Write(c.regs.BC(), c.regs.A()) })
	t[0x12] = do(func(c *CPU, op byte, arg uint16) { c.bus.Write(c.regs.DE(), c.regs.A()) })
	t[0x22] = do(func(c *CPU, op byte, arg uint16) {
		hl := c.regs.HL()
		c.bus.Write(hl, c.regs.A())
		c.regs.SetHL(hl + 1)
	})
	t[0x32] = do(func(c *CPU, op byte, arg uint16) {
		hl := c.regs.HL()
		c.bus.Write(hl, c.regs.A())
		c.regs.SetHL(hl - 1)
	})
	t[0x0A] = do(func(c *CPU, op byte, arg uint16) { c.regs.r[RegA] = c.bus.Read(c.regs.BC()) })
	t[0x1A] = do(func(c *CPU, op byte, arg uint16) { c.regs.r[RegA] = c.bus.Read(c.regs.DE()) })
	t[0x2A] = do(func(c *CPU, op byte, arg uint16) {
		hl := c.regs.HL()
		c.regs.r[RegA] = c.bus.Read(hl)
		c.regs.SetHL(hl + 1)
	})
	t[0x3A] = do(func(c *CPU, op byte, arg uint16) {
		hl := c.regs.HL()
		c.regs.r[RegA] = c.bus.Read(hl)
		c.regs.SetHL(hl - 1)
	})

	// 8-bit INC, DEC and immediate loads, register selected by bits 3-5
	for r := byte(0); r < 8; r++ {
		t[r<<3|0x04] = do(func(c *CPU, op byte, arg uint16) { c.set8(op>>3, c.inc8(c.get8(op>>3))) })
		t[r<<3|0x05] = do(func(c *CPU, op byte, arg uint16) { c.set8(op>>3, c.dec8(c.get8(op>>3))) })
		t[r<<3|0x06] = do(func(c *CPU, op byte, arg uint16) { c.set8(op>>3, byte(arg)) })
	}

	// accumulator rotates clear Z, N and H
	t[0x07] = do(func(c *CPU, op byte, arg uint16) {
		a := c.regs.A()
		c.regs.r[RegA] = a<<1 | a>>7
		c.regs.setZNHC(false, false, false, a&0x80 != 0)
	})
	t[0x17] = do(func(c *CPU, op byte, arg uint16) {
		a := c.regs.A()
		var cin byte
		if c.regs.flag(flagC) {
			cin = 1
		}
		c.regs.r[RegA] = a<<1 | cin
		c.regs.setZNHC(false, false, false, a&0x80 != 0)
	})
	t[0x0F] = do(func(c *CPU, op byte, arg uint16) {
		a := c.regs.A()
		c.regs.r[RegA] = a>>1 | a<<7
		c.regs.setZNHC(false, false, false, a&0x01 != 0)
	})
	t[0x1F] = do(func(c *CPU, op byte, arg uint16) {
		a := c.regs.A()
		var cin byte
		if c.regs.flag(flagC) {
			cin = 0x80
		}
		c.regs.r[RegA] = a>>1 | cin
		c.regs.setZNHC(false, false, false, a&0x01 != 0)
	})

	t[0x27] = do(func(c *CPU, op byte, arg uint16) { c.daa() })
	t[0x2F] = do(func(c *CPU, op byte, arg uint16) {
		c.regs.r[RegA] ^= 0xFF
		c.regs.setFlag(flagN, true)
		c.regs.setFlag(flagH, true)
	})
	t[0x37] = do(func(c *CPU, op byte, arg uint16) {
		c.regs.setZNHC(c.regs.flag(flagZ), false, false, true)
	})
	t[0x3F] = do(func(c *CPU, op byte, arg uint16) {
		c.regs.setZNHC(c.regs.flag(flagZ), false, false, !c.regs.flag(flagC))
	})

	// relative jumps
	t[0x18] = do(func(c *CPU, op byte, arg uint16) { c.jr(arg) })
	for _, op := range []byte{0x20, 0x28, 0x30, 0x38} {
		t[op] = do(func(c *CPU, op byte, arg uint16) {
			if c.cond(op) {
				c.jr(arg)
			}
		})
	}

	// conditional returns, jumps and calls share the condition field
	for _, base := range []byte{0xC0, 0xC8, 0xD0, 0xD8} {
		t[base] = do(func(c *CPU, op byte, arg uint16) {
			if c.cond(op) {
				c.regs.PC = c.pop16()
			}
		})
		t[base|0x02] = do(func(c *CPU, op byte, arg uint16) {
			if c.cond(op) {
				c.regs.PC = arg
			}
		})
		t[base|0x04] = do(func(c *CPU, op byte, arg uint16) {
			if c.cond(op) {
				c.call(arg)
			}
		})
	}
	t[0xC3] = do(func(c *CPU, op byte, arg uint16) { c.regs.PC = arg })
	t[0xC9] = do(func(c *CPU, op byte, arg uint16) { c.regs.PC = c.pop16() })
	t[0xD9] = do(func(c *CPU, op byte, arg uint16) {
		c.regs.PC = c.pop16()
		c.IME = true
	})
	t[0xCD] = do(func(c *CPU, op byte, arg uint16) { c.call(arg) })
	t[0xE9] = do(func(c *CPU, op byte, arg uint16) { c.regs.PC = c.regs.HL() })

	// stack, ALU immediates and restarts, one per row
	for row := byte(0); row < 4; row++ {
		t[0xC1+row<<4] = do(func(c *CPU, op byte, arg uint16) { c.regs.setRP2((op>>4)&3, c.pop16()) })
		t[0xC5+row<<4] = do(func(c *CPU, op byte, arg uint16) { c.push16(c.regs.rp2((op >> 4) & 3)) })
	}
	for i := byte(0); i < 8; i++ {
		t[0xC6+i<<3] = do(func(c *CPU, op byte, arg uint16) { aluOps[(op>>3)&7](c, byte(arg)) })
		t[0xC7+i<<3] = do(func(c *CPU, op byte, arg uint16) { c.call(uint16(op & 0x38)) })
	}

	// high page I/O
	t[0xE0] = do(func(c *CPU, op byte, arg uint16) { c.bus.Write(0xFF00+arg, c.regs.A()) })
	t[0xF0] = do(func(c *CPU, op byte, arg uint16) { c.regs.r[RegA] = c.bus.Read(0xFF00 + arg) })
	t[0xE2] = do(func(c *CPU, op byte, arg uint16) {
		c.bus.Write(0xFF00+uint16(c.regs.r[RegC]), c.regs.A())
	})
	t[0xF2] = do(func(c *CPU, op byte, arg uint16) {
		c.regs.r[RegA] = c.bus.Read(0xFF00 + uint16(c.regs.r[RegC]))
	})
	t[0xEA] = do(func(c *CPU, op byte, arg uint16) { c.bus.Write(arg, c.regs.A()) })
	t[0xFA] = do(func(c *CPU, op byte, arg uint16) { c.regs.r[RegA] = c.bus.Read(arg) })

	// stack pointer arithmetic
	t[0xE8] = do(func(c *CPU, op byte, arg uint16) { c.regs.SP = c.addSPOffset(int8(arg)) })
	t[0xF8] = do(func(c *CPU, op byte, arg uint16) { c.regs.SetHL(c.spOffsetHL(int8(arg))) })
	t[0xF9] = do(func(c *CPU, op byte, arg uint16) { c.regs.SP = c.regs.HL() })

	// EI takes effect immediately
	t[0xF3] = do(func(c *CPU, op byte, arg uint16) { c.IME = false })
	t[0xFB] = do(func(c *CPU, op byte, arg uint16) { c.IME = true })

	// test harness opcodes
	t[0xFC] = func(c *CPU, op byte, arg uint16) error { return exit.TestPassed() }
	t[0xFD] = func(c *CPU, op byte, arg uint16) error { return exit.TestFailed() }

	return t
}
