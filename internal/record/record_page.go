package record

import "github.com/robindb/robindb/internal/file"

type slotStatus int

const (
	slotEmpty slotStatus = 0
	slotInUse slotStatus = 1
)

// RecordPage gives slot-level access to one block of a table file. The
// block is read into memory at construction; mutations write the whole
// block back immediately, so a page can be dropped at any point without
// losing records. Append hands out zeroed blocks, so every slot of a new
// block starts empty.
type RecordPage struct {
	fm     *file.Manager
	blk    file.BlockID
	layout *Layout
	page   *file.Page
}

// NewRecordPage loads the given block for slot access.
func NewRecordPage(fm *file.Manager, blk file.BlockID, layout *Layout) (*RecordPage, error) {
	page := file.NewPage(fm.BlockSize())
	if err := fm.Read(blk, page); err != nil {
		return nil, err
	}
	return &RecordPage{fm: fm, blk: blk, layout: layout, page: page}, nil
}

// Block returns the block this page covers.
func (rp *RecordPage) Block() file.BlockID {
	return rp.blk
}

// GetInt reads the integer column of the record in the given slot.
func (rp *RecordPage) GetInt(slot int, column string) int {
	return rp.page.GetInt(rp.fieldOffset(slot, column))
}

// GetString reads the string column of the record in the given slot.
func (rp *RecordPage) GetString(slot int, column string) string {
	return rp.page.GetString(rp.fieldOffset(slot, column))
}

// SetInt writes the integer column of the record in the given slot.
func (rp *RecordPage) SetInt(slot int, column string, val int) error {
	rp.page.SetInt(rp.fieldOffset(slot, column), val)
	return rp.fm.Write(rp.blk, rp.page)
}

// SetString writes the string column of the record in the given slot.
func (rp *RecordPage) SetString(slot int, column string, val string) error {
	rp.page.SetString(rp.fieldOffset(slot, column), val)
	return rp.fm.Write(rp.blk, rp.page)
}

// Delete marks the record in the given slot as removed.
func (rp *RecordPage) Delete(slot int) error {
	return rp.setStatus(slot, slotEmpty)
}

// NextUsedSlot returns the first in-use slot after the given one, or -1
// when the rest of the block is empty. Slots are visited in a fixed
// order, which keeps repeated scans of the block deterministic.
func (rp *RecordPage) NextUsedSlot(slot int) int {
	return rp.searchAfter(slot, slotInUse)
}

// InsertSlot claims the first empty slot after the given one and returns
// its index, or -1 when the block is full.
func (rp *RecordPage) InsertSlot(slot int) (int, error) {
	next := rp.searchAfter(slot, slotEmpty)
	if next >= 0 {
		if err := rp.setStatus(next, slotInUse); err != nil {
			return -1, err
		}
	}
	return next, nil
}

func (rp *RecordPage) searchAfter(slot int, status slotStatus) int {
	for slot++; rp.isValidSlot(slot); slot++ {
		if slotStatus(rp.page.GetInt(slot*rp.layout.SlotSize())) == status {
			return slot
		}
	}
	return -1
}

func (rp *RecordPage) setStatus(slot int, status slotStatus) error {
	rp.page.SetInt(slot*rp.layout.SlotSize(), int(status))
	return rp.fm.Write(rp.blk, rp.page)
}

func (rp *RecordPage) isValidSlot(slot int) bool {
	return (slot+1)*rp.layout.SlotSize() <= rp.fm.BlockSize()
}

func (rp *RecordPage) fieldOffset(slot int, column string) int {
	return slot*rp.layout.SlotSize() + rp.layout.Offset(column)
}
