package record

import "github.com/robindb/robindb/internal/file"

// Layout fixes the physical placement of a schema's columns inside a
// record slot. The first four bytes of every slot hold the in-use flag.
type Layout struct {
	schema   *Schema
	offsets  map[string]int
	slotSize int
}

// NewLayout computes slot offsets for the given schema.
func NewLayout(schema *Schema) *Layout {
	offsets := make(map[string]int)
	pos := 4 // in-use flag
	for _, name := range schema.Columns() {
		offsets[name] = pos
		info, _ := schema.Column(name)
		switch info.Type {
		case Integer:
			pos += 4
		case Varchar:
			pos += file.MaxLength(info.Length)
		}
	}
	return &Layout{schema: schema, offsets: offsets, slotSize: pos}
}

// Schema returns the schema this layout was computed from.
func (l *Layout) Schema() *Schema {
	return l.schema
}

// Offset returns the byte offset of a column within a slot.
func (l *Layout) Offset(name string) int {
	return l.offsets[name]
}

// SlotSize returns the total bytes occupied by one record slot.
func (l *Layout) SlotSize() int {
	return l.slotSize
}
