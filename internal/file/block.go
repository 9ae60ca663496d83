package file

import "fmt"

// BlockID identifies one fixed-size block by the file it lives in and its
// position within that file.
type BlockID struct {
	filename string
	num      int
}

// NewBlockID creates a BlockID for the given file and block number.
func NewBlockID(filename string, num int) BlockID {
	return BlockID{filename: filename, num: num}
}

// Filename returns the name of the file containing the block.
func (b BlockID) Filename() string {
	return b.filename
}

// Number returns the block's position within its file.
func (b BlockID) Number() int {
	return b.num
}

func (b BlockID) String() string {
	return fmt.Sprintf("[file %s, block %d]", b.filename, b.num)
}
