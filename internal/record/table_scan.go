package record

import (
	"fmt"

	"github.com/robindb/robindb/internal/file"
)

// TableFile returns the name of the file backing a table.
func TableFile(tableName string) string {
	return tableName + ".tbl"
}

// TableScan iterates the records of one table file in block and slot
// order. BeforeFirst restarts the scan at the first block; because slots
// are always visited in the same order, a rewound scan replays exactly
// the row sequence of the previous pass. The statistics builder depends
// on that.
type TableScan struct {
	fm       *file.Manager
	layout   *Layout
	filename string
	rp       *RecordPage
	slot     int
}

// NewTableScan opens a scan over the given table, creating an empty first
// block for a table that has never been written.
func NewTableScan(fm *file.Manager, layout *Layout, tableName string) (*TableScan, error) {
	ts := &TableScan{fm: fm, layout: layout, filename: TableFile(tableName)}
	n, err := fm.BlockCount(ts.filename)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := ts.moveToNewBlock(); err != nil {
			return nil, err
		}
		return ts, nil
	}
	if err := ts.moveToBlock(0); err != nil {
		return nil, err
	}
	return ts, nil
}

// BeforeFirst positions the scan before the first record.
func (ts *TableScan) BeforeFirst() error {
	return ts.moveToBlock(0)
}

// Next advances to the next record. It returns false when the scan is
// exhausted.
func (ts *TableScan) Next() (bool, error) {
	ts.slot = ts.rp.NextUsedSlot(ts.slot)
	for ts.slot == -1 {
		last, err := ts.atLastBlock()
		if err != nil {
			return false, err
		}
		if last {
			return false, nil
		}
		if err := ts.moveToBlock(ts.rp.Block().Number() + 1); err != nil {
			return false, err
		}
		ts.slot = ts.rp.NextUsedSlot(ts.slot)
	}
	return true, nil
}

// GetInt reads an integer column of the current record.
func (ts *TableScan) GetInt(column string) (int, error) {
	if err := ts.checkCurrent(column, Integer); err != nil {
		return 0, err
	}
	return ts.rp.GetInt(ts.slot, column), nil
}

// GetString reads a string column of the current record.
func (ts *TableScan) GetString(column string) (string, error) {
	if err := ts.checkCurrent(column, Varchar); err != nil {
		return "", err
	}
	return ts.rp.GetString(ts.slot, column), nil
}

// SetInt writes an integer column of the current record.
func (ts *TableScan) SetInt(column string, val int) error {
	if err := ts.checkCurrent(column, Integer); err != nil {
		return err
	}
	return ts.rp.SetInt(ts.slot, column, val)
}

// SetString writes a string column of the current record. Values longer
// than the column's declared length are rejected; writing them through
// would overrun the column's slice of the slot.
func (ts *TableScan) SetString(column string, val string) error {
	if err := ts.checkCurrent(column, Varchar); err != nil {
		return err
	}
	info, _ := ts.layout.Schema().Column(column)
	if len(val) > info.Length {
		return fmt.Errorf("%s: value of %d bytes too long for column %q (varchar %d)",
			ts.filename, len(val), column, info.Length)
	}
	return ts.rp.SetString(ts.slot, column, val)
}

// Insert claims a slot for a new record and positions the scan on it,
// growing the file by a block when every existing slot is taken.
func (ts *TableScan) Insert() error {
	slot, err := ts.rp.InsertSlot(ts.slot)
	if err != nil {
		return err
	}
	ts.slot = slot
	for ts.slot == -1 {
		last, err := ts.atLastBlock()
		if err != nil {
			return err
		}
		if last {
			if err := ts.moveToNewBlock(); err != nil {
				return err
			}
		} else if err := ts.moveToBlock(ts.rp.Block().Number() + 1); err != nil {
			return err
		}
		slot, err = ts.rp.InsertSlot(ts.slot)
		if err != nil {
			return err
		}
		ts.slot = slot
	}
	return nil
}

// Delete removes the current record.
func (ts *TableScan) Delete() error {
	if ts.slot < 0 {
		return fmt.Errorf("%s: no current record", ts.filename)
	}
	return ts.rp.Delete(ts.slot)
}

// RID returns the identifier of the current record.
func (ts *TableScan) RID() (RID, error) {
	if ts.slot < 0 {
		return RID{}, fmt.Errorf("%s: no current record", ts.filename)
	}
	return NewRID(ts.rp.Block().Number(), ts.slot), nil
}

// HasColumn reports whether the scanned table has the named column.
func (ts *TableScan) HasColumn(column string) bool {
	return ts.layout.Schema().HasColumn(column)
}

// Close releases the scan. The scan holds no resources beyond its page
// image, so Close never fails.
func (ts *TableScan) Close() {}

func (ts *TableScan) moveToBlock(block int) error {
	rp, err := NewRecordPage(ts.fm, file.NewBlockID(ts.filename, block), ts.layout)
	if err != nil {
		return err
	}
	ts.rp = rp
	ts.slot = -1
	return nil
}

func (ts *TableScan) moveToNewBlock() error {
	blk, err := ts.fm.Append(ts.filename)
	if err != nil {
		return err
	}
	rp, err := NewRecordPage(ts.fm, blk, ts.layout)
	if err != nil {
		return err
	}
	ts.rp = rp
	ts.slot = -1
	return nil
}

func (ts *TableScan) atLastBlock() (bool, error) {
	n, err := ts.fm.BlockCount(ts.filename)
	if err != nil {
		return false, err
	}
	return ts.rp.Block().Number() == n-1, nil
}

func (ts *TableScan) checkCurrent(column string, want Type) error {
	if ts.slot < 0 {
		return fmt.Errorf("%s: no current record", ts.filename)
	}
	info, ok := ts.layout.Schema().Column(column)
	if !ok {
		return fmt.Errorf("%s: unknown column %q", ts.filename, column)
	}
	if info.Type != want {
		return fmt.Errorf("%s: column %q is %s", ts.filename, column, info.Type)
	}
	return nil
}
