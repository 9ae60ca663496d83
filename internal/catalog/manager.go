package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/robindb/robindb/internal/file"
	"github.com/robindb/robindb/internal/record"
)

// Table couples a table's name, layout, and storage.
type Table struct {
	name   string
	layout *record.Layout
	fm     *file.Manager
}

// Name returns the table's name.
func (t *Table) Name() string {
	return t.name
}

// Layout returns the table's physical layout.
func (t *Table) Layout() *record.Layout {
	return t.layout
}

// Schema returns the table's schema.
func (t *Table) Schema() *record.Schema {
	return t.layout.Schema()
}

// Open returns a fresh rewindable scan over the table's rows.
func (t *Table) Open() (*record.TableScan, error) {
	return record.NewTableScan(t.fm, t.layout, t.name)
}

// Pages returns the number of blocks in the table's file.
func (t *Table) Pages() (int, error) {
	return t.fm.BlockCount(record.TableFile(t.name))
}

// Manager is the catalog: the set of known tables and their schemas. It
// enumerates table names for statistics recomputation.
type Manager struct {
	fm *file.Manager

	mu     sync.RWMutex
	tables map[string]*Table
}

// NewManager creates an empty catalog over the given storage.
func NewManager(fm *file.Manager) *Manager {
	return &Manager{fm: fm, tables: make(map[string]*Table)}
}

// CreateTable registers a table with the given schema.
func (m *Manager) CreateTable(name string, schema *record.Schema) (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tables[name]; exists {
		return nil, fmt.Errorf("table %s already exists", name)
	}
	layout := record.NewLayout(schema)
	if layout.SlotSize() > m.fm.BlockSize() {
		return nil, fmt.Errorf("table %s: record slot of %d bytes does not fit a %d-byte block",
			name, layout.SlotSize(), m.fm.BlockSize())
	}
	tbl := &Table{name: name, layout: layout, fm: m.fm}
	m.tables[name] = tbl
	return tbl, nil
}

// Table returns the named table, if it exists.
func (m *Manager) Table(name string) (*Table, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tbl, ok := m.tables[name]
	return tbl, ok
}

// TableNames returns every known table name, sorted so that callers
// iterating the catalog do so in a stable order.
func (m *Manager) TableNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DropTable removes a table and deletes its file.
func (m *Manager) DropTable(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tables[name]; !exists {
		return fmt.Errorf("table %s does not exist", name)
	}
	delete(m.tables, name)
	return m.fm.Remove(record.TableFile(name))
}
