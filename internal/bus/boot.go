package bus

// BootSize is the length of the boot overlay at 0x0000.
const BootSize = 0x100

// defaultBoot sets up the post-boot machine state and then unmaps itself by
// writing to BOOT from the last two bytes, so execution falls through to 0x0100.
var defaultBoot = func() []byte {
	prog := []byte{
		0x31, 0xFE, 0xFF, // LD SP,$FFFE
		0x3E, 0x91, // LD A,$91
		0xE0, 0x40, // LDH (LCDC),A
		0x3E, 0xFC, // LD A,$FC
		0xE0, 0x47, // LDH (BGP),A
		0x21, 0xB0, 0x01, // LD HL,$01B0
		0xE5,             // PUSH HL
		0xF1,             // POP AF
		0x01, 0x13, 0x00, // LD BC,$0013
		0x11, 0xD8, 0x00, // LD DE,$00D8
		0x21, 0x4D, 0x01, // LD HL,$014D
	}
	boot := make([]byte, BootSize)
	copy(boot, prog)
	boot[BootSize-2] = 0xE0 // LDH (BOOT),A
	boot[BootSize-1] = 0x50
	return boot
}()

// DefaultBoot returns a copy of the built-in boot image.
func DefaultBoot() []byte {
	b := make([]byte, BootSize)
	copy(b, defaultBoot)
	return b
}
