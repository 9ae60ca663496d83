package record

import "fmt"

// RID identifies a record by its block number and slot within that block.
type RID struct {
	block int
	slot  int
}

// NewRID creates a record identifier.
func NewRID(block, slot int) RID {
	return RID{block: block, slot: slot}
}

// Block returns the record's block number.
func (r RID) Block() int {
	return r.block
}

// Slot returns the record's slot within its block.
func (r RID) Slot() int {
	return r.slot
}

func (r RID) String() string {
	return fmt.Sprintf("[%d, %d]", r.block, r.slot)
}
