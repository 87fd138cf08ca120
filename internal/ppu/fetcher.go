package ppu

// VRAMReader provides read-only access to video memory for the fetcher and
// scanline helpers. *bus.Bus satisfies it.
type VRAMReader interface {
	Read(addr uint16) byte
}

// fifo is a ring buffer of 2-bit color indices (0..3).
type fifo struct {
	buf  [32]byte // room for several tiles
	head int
	tail int
	size int
}

func (q *fifo) Len() int { return q.size }

func (q *fifo) Push(ci byte) bool {
	if q.size == len(q.buf) {
		return false
	}
	q.buf[q.tail] = ci & 0x03
	q.tail = (q.tail + 1) % len(q.buf)
	q.size++
	return true
}

func (q *fifo) Pop() (byte, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

// tileFetcher pulls one tile row (8 pixels) from a tile map into the FIFO.
type tileFetcher struct {
	mem           VRAMReader
	fifo          *fifo
	tileData8000  bool   // true: 0x8000 addressing; false: 0x8800 signed
	tileIndexAddr uint16 // tile index address within the map
	fineY         byte   // 0..7 within the tile
}

func newTileFetcher(mem VRAMReader, f *fifo) *tileFetcher {
	return &tileFetcher{mem: mem, fifo: f}
}

// Configure sets the addressing mode and the map entry for the next fetch.
func (tf *tileFetcher) Configure(tileData8000 bool, tileIndexAddr uint16, fineY byte) {
	tf.tileData8000 = tileData8000
	tf.tileIndexAddr = tileIndexAddr
	tf.fineY = fineY & 7
}

// Fetch pushes the 8 color indices of the current tile row.
func (tf *tileFetcher) Fetch() {
	tileNum := tf.mem.Read(tf.tileIndexAddr)
	lo, hi := tileRowBytes(tf.mem, tileNum, tf.tileData8000, tf.fineY)
	for _, ci := range TileRow(lo, hi) {
		_ = tf.fifo.Push(ci)
	}
}

// tileRowBytes returns the two bitplane bytes of row fineY of a tile.
func tileRowBytes(mem VRAMReader, tileNum byte, tileData8000 bool, fineY byte) (lo, hi byte) {
	var base uint16
	if tileData8000 {
		base = 0x8000 + uint16(tileNum)*16
	} else {
		base = uint16(0x9000 + int(int8(tileNum))*16)
	}
	base += uint16(fineY&7) * 2
	return mem.Read(base), mem.Read(base + 1)
}
