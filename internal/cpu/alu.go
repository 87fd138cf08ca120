package cpu

// 8-bit ALU. Every helper is a pure function of its operands (and the
// incoming carry where relevant) returning the result and the four flags.

func add8(a, b byte) (res byte, z, n, h, cy bool) {
	r := uint16(a) + uint16(b)
	res = byte(r)
	z = res == 0
	h = (a&0x0F)+(b&0x0F) > 0x0F
	cy = r > 0xFF
	return
}

func adc8(a, b byte, carryIn bool) (res byte, z, n, h, cy bool) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	r := uint16(a) + uint16(b) + uint16(ci)
	res = byte(r)
	z = res == 0
	h = (a&0x0F)+(b&0x0F)+ci > 0x0F
	cy = r > 0xFF
	return
}

func sub8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a - b
	z = res == 0
	n = true
	h = a&0x0F < b&0x0F
	cy = a < b
	return
}

func sbc8(a, b byte, carryIn bool) (res byte, z, n, h, cy bool) {
	ci := 0
	if carryIn {
		ci = 1
	}
	r := int(a) - int(b) - ci
	res = byte(r)
	z = res == 0
	n = true
	h = (a^b^res)&0x10 != 0
	cy = r < 0
	return
}

func and8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a & b
	return res, res == 0, false, true, false
}

func xor8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a ^ b
	return res, res == 0, false, false, false
}

func or8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a | b
	return res, res == 0, false, false, false
}

// cp8 compares like sub8 but the caller discards the result.
func cp8(a, b byte) (res byte, z, n, h, cy bool) {
	_, z, n, h, cy = sub8(a, b)
	return a, z, n, h, cy
}

// aluOps is indexed by bits 3-5 of the ALU opcode groups 0x80-0xBF and
// the immediate forms 0xC6, 0xCE, ... 0xFE.
var aluOps = [8]func(c *CPU, v byte){
	func(c *CPU, v byte) { c.applyALU(add8(c.regs.A(), v)) },
	func(c *CPU, v byte) { c.applyALU(adc8(c.regs.A(), v, c.regs.flag(flagC))) },
	func(c *CPU, v byte) { c.applyALU(sub8(c.regs.A(), v)) },
	func(c *CPU, v byte) { c.applyALU(sbc8(c.regs.A(), v, c.regs.flag(flagC))) },
	func(c *CPU, v byte) { c.applyALU(and8(c.regs.A(), v)) },
	func(c *CPU, v byte) { c.applyALU(xor8(c.regs.A(), v)) },
	func(c *CPU, v byte) { c.applyALU(or8(c.regs.A(), v)) },
	func(c *CPU, v byte) { c.applyALU(cp8(c.regs.A(), v)) },
}

func (c *CPU) applyALU(res byte, z, n, h, cy bool) {
	c.regs.r[RegA] = res
	c.regs.setZNHC(z, n, h, cy)
}

// inc8 and dec8 leave the carry flag untouched.
func (c *CPU) inc8(v byte) byte {
	h := v&0x0F == 0x0F
	v++
	c.regs.setZNHC(v == 0, false, h, c.regs.flag(flagC))
	return v
}

func (c *CPU) dec8(v byte) byte {
	v--
	c.regs.setZNHC(v == 0, true, v&0x0F == 0x0F, c.regs.flag(flagC))
	return v
}

// addHL adds v to HL: H from bit 11, C from bit 15, Z preserved.
func (c *CPU) addHL(v uint16) {
	hl := c.regs.HL()
	h := (hl&0x0FFF)+(v&0x0FFF) > 0x0FFF
	cy := uint32(hl)+uint32(v) > 0xFFFF
	c.regs.SetHL(hl + v)
	c.regs.setZNHC(c.regs.flag(flagZ), false, h, cy)
}

// daa corrects A to packed BCD after an add or subtract. The carry flag is
// only ever set here, never cleared.
func (c *CPU) daa() {
	v := uint16(c.regs.A())
	if !c.regs.flag(flagN) {
		if c.regs.flag(flagH) || v&0x0F > 9 {
			v += 0x06
		}
		if c.regs.flag(flagC) || v > 0x9F {
			v += 0x60
		}
	} else {
		if c.regs.flag(flagH) {
			v -= 0x06
			if !c.regs.flag(flagC) {
				v &= 0xFF
			}
		}
		if c.regs.flag(flagC) {
			v -= 0x60
		}
	}
	c.regs.setFlag(flagH, false)
	if v&0x100 != 0 {
		c.regs.setFlag(flagC, true)
	}
	c.regs.r[RegA] = byte(v)
	c.regs.setFlag(flagZ, byte(v) == 0)
}

// addSPOffset returns SP+e with the H and C flags derived from the xor of
// the operands and the result.
func (c *CPU) addSPOffset(e int8) uint16 {
	sp := c.regs.SP
	res := uint16(int(sp) + int(e))
	x := sp ^ uint16(e) ^ res
	c.regs.setZNHC(false, false, x&0x10 != 0, x&0x100 != 0)
	return res
}

// spOffsetHL returns SP+e for LD HL,SP+e. Negative offsets derive H and C by
// comparing the low bits of the result against SP.
func (c *CPU) spOffsetHL(e int8) uint16 {
	sp := c.regs.SP
	res := uint16(int(sp) + int(e))
	var h, cy bool
	if e >= 0 {
		cy = (sp&0xFF)+(uint16(e)&0xFF) > 0xFF
		h = (sp&0x0F)+(uint16(e)&0x0F) > 0x0F
	} else {
		cy = res&0xFF <= sp&0xFF
		h = res&0x0F <= sp&0x0F
	}
	c.regs.setZNHC(false, false, h, cy)
	return res
}
