package cpu

// Reg indexes the register file using the hardware's 3-bit operand encoding.
// Index 6 selects the byte at HL for instruction operands; in the file itself
// the slot holds the flags byte.
type Reg int

const (
	RegB Reg = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegF
	RegA
)

// operandHL is the operand selector meaning "byte at HL".
const operandHL = 6

// Flag bits in F.
const (
	flagZ byte = 1 << 7
	flagN byte = 1 << 6
	flagH byte = 1 << 5
	flagC byte = 1 << 4
)

// Registers is the 8-bit register file with 16-bit pair views.
type Registers struct {
	r  [8]byte
	SP uint16
	PC uint16
}

// Get returns the 8-bit register i.
func (r *Registers) Get(i Reg) byte { return r.r[i] }

// Set stores v in the 8-bit register i. The low nibble of F always reads zero.
func (r *Registers) Set(i Reg, v byte) {
	if i == RegF {
		v &= 0xF0
	}
	r.r[i] = v
}

func (r *Registers) A() byte { return r.r[RegA] }
func (r *Registers) F() byte { return r.r[RegF] }

func (r *Registers) pair(hi, lo Reg) uint16 { return uint16(r.r[hi])<<8 | uint16(r.r[lo]) }

func (r *Registers) setPair(hi, lo Reg, v uint16) {
	r.r[hi] = byte(v >> 8)
	r.Set(lo, byte(v))
}

func (r *Registers) AF() uint16 { return r.pair(RegA, RegF) }
func (r *Registers) BC() uint16 { return r.pair(RegB, RegC) }
func (r *Registers) DE() uint16 { return r.pair(RegD, RegE) }
func (r *Registers) HL() uint16 { return r.pair(RegH, RegL) }

func (r *Registers) SetAF(v uint16) { r.setPair(RegA, RegF, v) }
func (r *Registers) SetBC(v uint16) { r.setPair(RegB, RegC, v) }
func (r *Registers) SetDE(v uint16) { r.setPair(RegD, RegE, v) }
func (r *Registers) SetHL(v uint16) { r.setPair(RegH, RegL, v) }

func (r *Registers) flag(f byte) bool { return r.r[RegF]&f != 0 }

func (r *Registers) setFlag(f byte, on bool) {
	if on {
		r.r[RegF] |= f
	} else {
		r.r[RegF] &^= f
	}
}

func (r *Registers) setZNHC(z, n, h, carry bool) {
	var f byte
	if z {
		f |= flagZ
	}
	if n {
		f |= flagN
	}
	if h {
		f |= flagH
	}
	if carry {
		f |= flagC
	}
	r.r[RegF] = f
}

// rp returns the register pair selected by a 2-bit field where 3 means SP.
func (r *Registers) rp(i byte) uint16 {
	switch i & 3 {
	case 0:
		return r.BC()
	case 1:
		return r.DE()
	case 2:
		return r.HL()
	default:
		return r.SP
	}
}

func (r *Registers) setRP(i byte, v uint16) {
	switch i & 3 {
	case 0:
		r.SetBC(v)
	case 1:
		r.SetDE(v)
	case 2:
		r.SetHL(v)
	default:
		r.SP = v
	}
}

// rp2 is like rp but 3 selects AF, as used by PUSH and POP.
func (r *Registers) rp2(i byte) uint16 {
	if i&3 == 3 {
		return r.AF()
	}
	return r.rp(i)
}

func (r *Registers) setRP2(i byte, v uint16) {
	if i&3 == 3 {
		r.SetAF(v)
		return
	}
	r.setRP(i, v)
}
