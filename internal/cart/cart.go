// Package cart holds a loaded cartridge image: the ROM bytes, the external
// RAM buffer and the metadata decoded from the header.
package cart

import (
	"github.com/retroenv/retrogolib/log"
)

// MinROMSize is the smallest cartridge: fixed bank 0 plus one switchable bank.
const MinROMSize = 0x8000

// Image is a cartridge as seen by the memory controller. ROM is never
// written after New returns; RAM is owned by the memory controller.
type Image struct {
	ROM    []byte
	RAM    []byte
	Header *Header

	Name    string
	ROMSize int
	RAMSize int

	LogoValid     bool
	ChecksumValid bool
}

// New builds an Image from raw ROM bytes. Images shorter than MinROMSize are
// zero padded so that the header region always exists. The declared ROM size
// comes from the header; an unknown size code falls back to the data length.
func New(data []byte, logger *log.Logger) (*Image, error) {
	rom := data
	if len(rom) < MinROMSize {
		rom = make([]byte, MinROMSize)
		copy(rom, data)
	}

	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	img := &Image{
		ROM:           rom,
		Header:        h,
		Name:          h.Title,
		ROMSize:       h.ROMSizeBytes,
		RAMSize:       h.RAMSizeBytes,
		LogoValid:     LogoOK(rom),
		ChecksumValid: HeaderChecksumOK(rom),
	}
	if img.ROMSize == 0 {
		img.ROMSize = len(rom)
	}
	img.RAM = make([]byte, img.RAMSize)

	if logger != nil {
		logger.Info("Cartridge loaded",
			log.String("title", img.Name),
			log.String("type", h.CartTypeStr),
			log.Int("rom_size", img.ROMSize),
			log.Int("ram_size", img.RAMSize))
		if !img.LogoValid {
			logger.Warn("Cartridge logo mismatch")
		}
		if !img.ChecksumValid {
			logger.Warn("Cartridge header checksum mismatch", log.Hex("checksum", h.HeaderChecksum))
		}
	}
	return img, nil
}
