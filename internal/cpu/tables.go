package cpu

import "fmt"

// Argument kinds trailing a base opcode.
const (
	argNone = iota
	argU8
	argU16
	argI8
)

var argLen = [4]uint16{0, 1, 2, 1}

// opCycles is the cost of each base opcode in 1MHz ticks. Conditional
// branches are charged the same whether or not they are taken.
var opCycles = [256]int{
	1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1, // 0x00
	0, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1, // 0x10
	2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 0x20
	2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 0x30
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x40
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x50
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x60
	2, 2, 2, 2, 2, 2, 0, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 0x70
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x80
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x90
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xA0
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xB0
	2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4, // 0xC0
	2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4, // 0xD0
	3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4, // 0xE0
	3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4, // 0xF0
}

// cbCycles is the cost of each CB-prefixed opcode; only the (HL) column differs.
var cbCycles = func() [256]int {
	var t [256]int
	for op := range t {
		switch {
		case op&7 != operandHL:
			t[op] = 2
		case op >= 0x40 && op < 0x80:
			t[op] = 3
		default:
			t[op] = 4
		}
	}
	return t
}()

var argTypes = [256]byte{
	0, 2, 0, 0, 0, 0, 1, 0, 2, 0, 0, 0, 0, 0, 1, 0, // 0x00
	1, 2, 0, 0, 0, 0, 1, 0, 3, 0, 0, 0, 0, 0, 1, 0, // 0x10
	3, 2, 0, 0, 0, 0, 1, 0, 3, 0, 0, 0, 0, 0, 1, 0, // 0x20
	3, 2, 0, 0, 0, 0, 1, 0, 3, 0, 0, 0, 0, 0, 1, 0, // 0x30
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x40
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x50
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x60
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x70
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x80
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x90
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xA0
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xB0
	0, 0, 2, 2, 2, 0, 1, 0, 0, 0, 2, 0, 2, 2, 1, 0, // 0xC0
	0, 0, 2, 0, 2, 0, 1, 0, 0, 0, 2, 0, 2, 0, 1, 0, // 0xD0
	1, 0, 0, 0, 0, 0, 1, 0, 3, 0, 2, 0, 0, 0, 1, 0, // 0xE0
	1, 0, 0, 0, 0, 0, 1, 0, 3, 0, 2, 0, 0, 0, 1, 0, // 0xF0
}

var regNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

var aluNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

// opNames holds fmt templates for the base opcodes; the 0x40-0xBF block is
// filled in from regNames and aluNames.
var opNames = func() [256]string {
	t := [256]string{
		0x00: "NOP", 0x01: "LD BC,$%04X", 0x02: "LD (BC),A", 0x03: "INC BC",
		0x04: "INC B", 0x05: "DEC B", 0x06: "LD B,$%02X", 0x07: "RLCA",
		0x08: "LD ($%04X),SP", 0x09: "ADD HL,BC", 0x0A: "LD A,(BC)", 0x0B: "DEC BC",
		0x0C: "INC C", 0x0D: "DEC C", 0x0E: "LD C,$%02X", 0x0F: "RRCA",
		0x10: "STOP $%02X", 0x11: "LD DE,$%04X", 0x12: "LD (DE),A", 0x13: "INC DE",
		0x14: "INC D", 0x15: "DEC D", 0x16: "LD D,$%02X", 0x17: "RLA",
		0x18: "JR %+d", 0x19: "ADD HL,DE", 0x1A: "LD A,(DE)", 0x1B: "DEC DE",
		0x1C: "INC E", 0x1D: "DEC E", 0x1E: "LD E,$%02X", 0x1F: "RRA",
		0x20: "JR NZ,%+d", 0x21: "LD HL,$%04X", 0x22: "LD (HL+),A", 0x23: "INC HL",
		0x24: "INC H", 0x25: "DEC H", 0x26: "LD H,$%02X", 0x27: "DAA",
		0x28: "JR Z,%+d", 0x29: "ADD HL,HL", 0x2A: "LD A,(HL+)", 0x2B: "DEC HL",
		0x2C: "INC L", 0x2D: "DEC L", 0x2E: "LD L,$%02X", 0x2F: "CPL",
		0x30: "JR NC,%+d", 0x31: "LD SP,$%04X", 0x32: "LD (HL-),A", 0x33: "INC SP",
		0x34: "INC (HL)", 0x35: "DEC (HL)", 0x36: "LD (HL),$%02X", 0x37: "SCF",
		0x38: "JR C,%+d", 0x39: "ADD HL,SP", 0x3A: "LD A,(HL-)", 0x3B: "DEC SP",
		0x3C: "INC A", 0x3D: "DEC A", 0x3E: "LD A,$%02X", 0x3F: "CCF",

		0xC0: "RET NZ", 0xC1: "POP BC", 0xC2: "JP NZ,$%04X", 0xC3: "JP $%04X",
		0xC4: "CALL NZ,$%04X", 0xC5: "PUSH BC", 0xC6: "ADD A,$%02X", 0xC7: "RST $00",
		0xC8: "RET Z", 0xC9: "RET", 0xCA: "JP Z,$%04X", 0xCB: "PREFIX CB",
		0xCC: "CALL Z,$%04X", 0xCD: "CALL $%04X", 0xCE: "ADC A,$%02X", 0xCF: "RST $08",
		0xD0: "RET NC", 0xD1: "POP DE", 0xD2: "JP NC,$%04X", 0xD3: "ERR D3",
		0xD4: "CALL NC,$%04X", 0xD5: "PUSH DE", 0xD6: "SUB $%02X", 0xD7: "RST $10",
		0xD8: "RET C", 0xD9: "RETI", 0xDA: "JP C,$%04X", 0xDB: "ERR DB",
		0xDC: "CALL C,$%04X", 0xDD: "ERR DD", 0xDE: "SBC A,$%02X", 0xDF: "RST $18",
		0xE0: "LDH ($%02X),A", 0xE1: "POP HL", 0xE2: "LD (C),A", 0xE3: "ERR E3",
		0xE4: "ERR E4", 0xE5: "PUSH HL", 0xE6: "AND $%02X", 0xE7: "RST $20",
		0xE8: "ADD SP,%+d", 0xE9: "JP HL", 0xEA: "LD ($%04X),A", 0xEB: "ERR EB",
		0xEC: "ERR EC", 0xED: "ERR ED", 0xEE: "XOR $%02X", 0xEF: "RST $28",
		0xF0: "LDH A,($%02X)", 0xF1: "POP AF", 0xF2: "LD A,(C)", 0xF3: "DI",
		0xF4: "ERR F4", 0xF5: "PUSH AF", 0xF6: "OR $%02X", 0xF7: "RST $30",
		0xF8: "LD HL,SP%+d", 0xF9: "LD SP,HL", 0xFA: "LD A,($%04X)", 0xFB: "EI",
		0xFC: "TEST PASS", 0xFD: "TEST FAIL", 0xFE: "CP $%02X", 0xFF: "RST $38",
	}
	for op := 0x40; op < 0x80; op++ {
		t[op] = "LD " + regNames[(op>>3)&7] + "," + regNames[op&7]
	}
	t[0x76] = "HALT"
	for op := 0x80; op < 0xC0; op++ {
		t[op] = aluNames[(op>>3)&7] + regNames[op&7]
	}
	return t
}()

var cbNames = func() [256]string {
	shifts := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
	var t [256]string
	for op := range t {
		reg := regNames[op&7]
		bit := (op >> 3) & 7
		switch op >> 6 {
		case 0:
			t[op] = shifts[bit] + " " + reg
		case 1:
			t[op] = fmt.Sprintf("BIT %d,%s", bit, reg)
		case 2:
			t[op] = fmt.Sprintf("RES %d,%s", bit, reg)
		default:
			t[op] = fmt.Sprintf("SET %d,%s", bit, reg)
		}
	}
	return t
}()

// Disassemble renders the instruction at the start of code, which must hold
// the opcode and any argument bytes.
func Disassemble(code []byte) string {
	if len(code) == 0 {
		return ""
	}
	op := code[0]
	if op == 0xCB {
		if len(code) < 2 {
			return opNames[op]
		}
		return cbNames[code[1]]
	}
	arg := func(i int) int {
		if i < len(code) {
			return int(code[i])
		}
		return 0
	}
	switch argTypes[op] {
	case argU8:
		return fmt.Sprintf(opNames[op], arg(1))
	case argU16:
		return fmt.Sprintf(opNames[op], arg(2)<<8|arg(1))
	case argI8:
		return fmt.Sprintf(opNames[op], int8(arg(1)))
	default:
		return opNames[op]
	}
}
