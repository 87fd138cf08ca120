package cpu

// execCB runs a CB-prefixed opcode. Bits 0-2 select the operand, bits 3-7
// the operation; every operation except BIT writes the operand back.
func (c *CPU) execCB(op byte) {
	v := c.get8(op)
	bit := (op >> 3) & 7

	switch op >> 6 {
	case 1: // BIT
		c.regs.setZNHC(v&(1<<bit) == 0, false, true, c.regs.flag(flagC))
		return
	case 2: // RES
		c.set8(op, v&^(1<<bit))
		return
	case 3: // SET
		c.set8(op, v|1<<bit)
		return
	}

	var carry bool
	switch bit {
	case 0: // RLC
		carry = v&0x80 != 0
		v = v<<1 | v>>7
	case 1: // RRC
		carry = v&0x01 != 0
		v = v>>1 | v<<7
	case 2: // RL
		var cin byte
		if c.regs.flag(flagC) {
			cin = 1
		}
		carry = v&0x80 != 0
		v = v<<1 | cin
	case 3: // RR
		var cin byte
		if c.regs.flag(flagC) {
			cin = 0x80
		}
		carry = v&0x01 != 0
		v = v>>1 | cin
	case 4: // SLA
		carry = v&0x80 != 0
		v <<= 1
	case 5: // SRA
		carry = v&0x01 != 0
		v = v>>1 | v&0x80
	case 6: // SWAP
		v = v<<4 | v>>4
	case 7: // SRL
		carry = v&0x01 != 0
		v >>= 1
	}
	c.regs.setZNHC(v == 0, false, false, carry)
	c.set8(op, v)
}
