// Package bus implements the memory controller: the 64KiB address space, the
// cartridge bank controller and the boot overlay.
package bus

import (
	"io"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/retroenv/retrogolib/log"
)

// banks is the bank controller latch state.
type banks struct {
	ramEnable bool
	ramMode   bool
	romLow    byte
	romHigh   byte
	rom       int
	ram       int
}

// Bus owns the address space. Every unit reads and writes machine state
// through it; none keeps a private copy.
type Bus struct {
	data  [0x10000]byte
	cart  *cart.Image
	boot  []byte
	banks banks

	// fault latches the first fatal bank controller error.
	fault error

	serial     io.Writer
	serialDone func()

	logger *log.Logger
	debug  bool
}

// New creates a bus around img with the built-in boot image mapped.
func New(img *cart.Image, logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}
	return &Bus{
		cart:   img,
		boot:   defaultBoot,
		banks:  banks{romLow: 1, rom: 1},
		logger: logger,
	}
}

// SetDebug enables logging of bank controller changes.
func (b *Bus) SetDebug(on bool) { b.debug = on }

// SetBootROM replaces the boot overlay. Images shorter than BootSize are
// padded with NOPs.
func (b *Bus) SetBootROM(boot []byte) {
	img := make([]byte, BootSize)
	copy(img, boot)
	b.boot = img
}

// SkipBoot unmaps the boot overlay.
func (b *Bus) SkipBoot() { b.data[BOOT] = 1 }

// BootActive reports whether reads below 0x0100 come from the boot overlay.
func (b *Bus) BootActive() bool { return b.data[BOOT] == 0 }

// SetSerialWriter connects w to receive bytes sent over the serial port.
func (b *Bus) SetSerialWriter(w io.Writer) { b.serial = w }

// SetSerialHook registers fn to run when a serial transfer completes.
func (b *Bus) SetSerialHook(fn func()) { b.serialDone = fn }

// Err returns the latched fatal error, if any.
func (b *Bus) Err() error { return b.fault }

// Name returns the cartridge title.
func (b *Bus) Name() string { return b.cart.Name }

// ROMSize returns the declared cartridge ROM size in bytes.
func (b *Bus) ROMSize() int { return b.cart.ROMSize }

// RAMSize returns the declared cartridge RAM size in bytes.
func (b *Bus) RAMSize() int { return b.cart.RAMSize }

// ROMBank returns the currently composed switchable ROM bank.
func (b *Bus) ROMBank() int { return b.banks.rom }

// RAMBank returns the selected external RAM bank.
func (b *Bus) RAMBank() int { return b.banks.ram }

// RAMEnabled reports the state of the external RAM enable latch.
func (b *Bus) RAMEnabled() bool { return b.banks.ramEnable }

// VRAM returns the video RAM bytes. Callers must treat the slice as read-only.
func (b *Bus) VRAM() []byte { return b.data[VRAMStart:VRAMEnd] }

// OAM returns the sprite attribute table. Callers must treat the slice as read-only.
func (b *Bus) OAM() []byte { return b.data[OAMStart:OAMEnd] }

func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < ROMBankN:
		if addr < BootSize && b.data[BOOT] == 0 {
			return b.boot[addr]
		}
		return b.cart.ROM[addr]

	case addr < VRAMStart:
		off := b.banks.rom*romBankLen + int(addr-ROMBankN)
		if off >= len(b.cart.ROM) {
			return 0xFF
		}
		return b.cart.ROM[off]

	case addr >= ExtRAM && addr < WRAM:
		if !b.banks.ramEnable {
			b.logger.Warn("Reading from external ram while disabled", log.Hex("address", addr))
			return 0
		}
		off := b.banks.ram*ramBankLen + int(addr-ExtRAM)
		if off >= len(b.cart.RAM) {
			b.logger.Warn("Reading from external ram beyond limit",
				log.Hex("address", addr), log.Int("bank", b.banks.ram))
			return 0xFF
		}
		return b.cart.RAM[off]

	case addr >= EchoStart && addr < EchoEnd:
		return b.data[addr-echoOffset]

	case addr >= Unusable && addr < IOStart:
		return 0xFF
	}
	return b.data[addr]
}

func (b *Bus) Write(addr uint16, v byte) {
	switch {
	case addr < 0x2000:
		b.banks.ramEnable = v != 0

	case addr < ROMBankN:
		low := v & 0x1F
		if low == 0 {
			low = 1
		}
		b.setROMBank(b.banks.romHigh, low)

	case addr < 0x6000:
		if b.banks.ramMode {
			b.setRAMBank(int(v & 0x03))
		} else {
			b.setROMBank(v&0x03, b.banks.romLow)
		}

	case addr < VRAMStart:
		b.banks.ramMode = v != 0

	case addr >= ExtRAM && addr < WRAM:
		if !b.banks.ramEnable {
			return
		}
		off := b.banks.ram*ramBankLen + int(addr-ExtRAM)
		if off >= len(b.cart.RAM) {
			b.setFault(exit.RAMWriteOverflow(b.banks.ram, int(addr-ExtRAM), len(b.cart.RAM)))
			return
		}
		b.cart.RAM[off] = v

	case addr >= EchoStart && addr < EchoEnd:
		b.data[addr-echoOffset] = v

	case addr >= Unusable && addr < IOStart:
		// discarded

	case addr == SC:
		b.data[SC] = v
		if v&0x80 != 0 {
			b.transferSerial()
		}

	default:
		b.data[addr] = v
	}
}

// And stores read(addr) & v back to addr.
func (b *Bus) And(addr uint16, v byte) { b.Write(addr, b.Read(addr)&v) }

// Or stores read(addr) | v back to addr.
func (b *Bus) Or(addr uint16, v byte) { b.Write(addr, b.Read(addr)|v) }

// Inc increments the byte at addr, wrapping at 0xFF.
func (b *Bus) Inc(addr uint16) { b.Write(addr, b.Read(addr)+1) }

func (b *Bus) setROMBank(high, low byte) {
	bank := int(high)<<5 | int(low)
	if bank*romBankLen > b.cart.ROMSize {
		b.setFault(exit.ROMBankOverflow(bank, b.cart.ROMSize))
		return
	}
	b.banks.romHigh, b.banks.romLow, b.banks.rom = high, low, bank
	if b.debug {
		b.logger.Debug("ROM bank selected",
			log.Int("bank", bank), log.Int("banks", b.cart.ROMSize/romBankLen))
	}
}

func (b *Bus) setRAMBank(bank int) {
	if bank*ramBankLen > b.cart.RAMSize {
		b.setFault(exit.RAMBankOverflow(bank, b.cart.RAMSize))
		return
	}
	b.banks.ram = bank
	if b.debug {
		b.logger.Debug("RAM bank selected",
			log.Int("bank", bank), log.Int("banks", b.cart.RAMSize/ramBankLen))
	}
}

func (b *Bus) setFault(err error) {
	if b.fault == nil {
		b.fault = err
		b.logger.Error("Bank controller fault", log.Err(err))
	}
}

// transferSerial completes a transfer instantly: the byte in SB goes to the
// serial writer and the transfer flag in SC is cleared.
func (b *Bus) transferSerial() {
	if b.serial != nil {
		_, _ = b.serial.Write([]byte{b.data[SB]})
	}
	b.data[SC] &^= 0x80
	if b.serialDone != nil {
		b.serialDone()
	}
}
