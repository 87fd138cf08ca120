package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type aluResult struct {
	res         byte
	z, n, h, cy bool
}

func result(res byte, z, n, h, cy bool) aluResult { return aluResult{res, z, n, h, cy} }

func TestALU_Add(t *testing.T) {
	assert.Equal(t, aluResult{0x10, false, false, true, false}, result(add8(0x0F, 0x01)))
	assert.Equal(t, aluResult{0x00, true, false, true, true}, result(add8(0xFF, 0x01)))
	assert.Equal(t, aluResult{0x00, true, false, true, true}, result(adc8(0xFE, 0x01, true)))
	assert.Equal(t, aluResult{0x10, false, false, true, false}, result(adc8(0x0E, 0x01, true)))
}

func TestALU_Sub(t *testing.T) {
	assert.Equal(t, aluResult{0x0F, false, true, true, false}, result(sub8(0x10, 0x01)))
	assert.Equal(t, aluResult{0xFF, false, true, true, true}, result(sub8(0x00, 0x01)))
	assert.Equal(t, aluResult{0x00, true, true, false, false}, result(sbc8(0x11, 0x10, true)))
	assert.Equal(t, aluResult{0xFF, false, true, true, true}, result(sbc8(0x00, 0x00, true)))
	// compare leaves the operand in place
	assert.Equal(t, aluResult{0x42, true, true, false, false}, result(cp8(0x42, 0x42)))
}

func TestALU_Logic(t *testing.T) {
	assert.Equal(t, aluResult{0x00, true, false, true, false}, result(and8(0xF0, 0x0F)))
	assert.Equal(t, aluResult{0xFF, false, false, false, false}, result(or8(0xF0, 0x0F)))
	for _, a := range []byte{0x00, 0x01, 0x7F, 0xFF} {
		assert.Equal(t, aluResult{0x00, true, false, false, false}, result(xor8(a, a)))
	}
}

// Flags depend only on the operands and carry in, never on prior Z, N or H.
func TestALU_FlagsIgnorePriorState(t *testing.T) {
	for op := 0; op < 8; op++ {
		dirty := newCPUWithROM(t, nil)
		dirty.regs.r[RegA] = 0x3A
		dirty.regs.r[RegF] = flagZ | flagN | flagH
		aluOps[op](dirty, 0xC6)

		clean := newCPUWithROM(t, nil)
		clean.regs.r[RegA] = 0x3A
		aluOps[op](clean, 0xC6)

		assert.Equal(t, clean.regs.A(), dirty.regs.A())
		assert.Equal(t, clean.regs.F(), dirty.regs.F())
	}
}
