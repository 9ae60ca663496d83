package file

import "encoding/binary"

// Page is the in-memory image of one disk block. Integers are stored as
// big-endian int32; strings are length-prefixed byte arrays.
type Page struct {
	buf []byte
}

// NewPage creates an empty page of the given block size.
func NewPage(blockSize int) *Page {
	return &Page{buf: make([]byte, blockSize)}
}

// Contents returns the page's backing buffer.
func (p *Page) Contents() []byte {
	return p.buf
}

// GetInt reads the integer stored at offset.
func (p *Page) GetInt(offset int) int {
	return int(int32(binary.BigEndian.Uint32(p.buf[offset : offset+4])))
}

// SetInt writes an integer at offset.
func (p *Page) SetInt(offset int, val int) {
	binary.BigEndian.PutUint32(p.buf[offset:offset+4], uint32(int32(val)))
}

// GetString reads the length-prefixed string stored at offset. A length
// that does not fit in the page reads as the empty string.
func (p *Page) GetString(offset int) string {
	n := p.GetInt(offset)
	if n < 0 || offset+4+n > len(p.buf) {
		return ""
	}
	return string(p.buf[offset+4 : offset+4+n])
}

// SetString writes a length-prefixed string at offset.
func (p *Page) SetString(offset int, val string) {
	p.SetInt(offset, len(val))
	copy(p.buf[offset+4:], val)
}

// MaxLength returns the bytes needed to store a string of strlen
// characters, including the length prefix.
func MaxLength(strlen int) int {
	return 4 + strlen
}
