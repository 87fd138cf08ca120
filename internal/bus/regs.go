package bus

// Memory-mapped register and region addresses.
const (
	ROMBank0   = 0x0000
	ROMBankN   = 0x4000
	VRAMStart  = 0x8000
	VRAMEnd    = 0xA000
	ExtRAM     = 0xA000
	WRAM       = 0xC000
	EchoStart  = 0xE000
	EchoEnd    = 0xFE00
	OAMStart   = 0xFE00
	OAMEnd     = 0xFEA0
	Unusable   = 0xFEA0
	IOStart    = 0xFF00
	HRAMStart  = 0xFF80
	OAMSize    = OAMEnd - OAMStart
	romBankLen = 0x4000
	ramBankLen = 0x2000
	echoOffset = EchoStart - WRAM
)

const (
	P1   uint16 = 0xFF00 // joypad
	SB   uint16 = 0xFF01
	SC   uint16 = 0xFF02
	DIV  uint16 = 0xFF04
	TIMA uint16 = 0xFF05
	TMA  uint16 = 0xFF06
	TAC  uint16 = 0xFF07
	IF   uint16 = 0xFF0F

	NR10 uint16 = 0xFF10
	NR52 uint16 = 0xFF26

	WaveRAMStart uint16 = 0xFF30
	WaveRAMEnd   uint16 = 0xFF40

	LCDC uint16 = 0xFF40
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LY   uint16 = 0xFF44
	LYC  uint16 = 0xFF45
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
	BOOT uint16 = 0xFF50

	IE uint16 = 0xFFFF
)
