package record

// Type is the declared type of a column. The set is closed: statistics
// and scans route values by this tag.
type Type int

const (
	Integer Type = iota
	Varchar
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "int"
	case Varchar:
		return "varchar"
	}
	return "unknown"
}

// ColumnInfo describes one column's type and, for varchar columns, its
// maximum length in characters.
type ColumnInfo struct {
	Type   Type
	Length int
}

// Schema describes the columns of a table in declaration order.
type Schema struct {
	columns []string
	info    map[string]ColumnInfo
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{info: make(map[string]ColumnInfo)}
}

// AddColumn adds a column with explicit type information. Re-adding an
// existing column overwrites its info without duplicating it.
func (s *Schema) AddColumn(name string, info ColumnInfo) {
	if _, exists := s.info[name]; !exists {
		s.columns = append(s.columns, name)
	}
	s.info[name] = info
}

// AddIntColumn adds an integer column.
func (s *Schema) AddIntColumn(name string) {
	s.AddColumn(name, ColumnInfo{Type: Integer})
}

// AddStringColumn adds a varchar column with the given maximum length.
func (s *Schema) AddStringColumn(name string, length int) {
	s.AddColumn(name, ColumnInfo{Type: Varchar, Length: length})
}

// Add copies one column from another schema.
func (s *Schema) Add(name string, other *Schema) {
	if info, ok := other.info[name]; ok {
		s.AddColumn(name, info)
	}
}

// AddAll copies every column from another schema.
func (s *Schema) AddAll(other *Schema) {
	for _, name := range other.columns {
		s.AddColumn(name, other.info[name])
	}
}

// Columns returns the column names in declaration order.
func (s *Schema) Columns() []string {
	columns := make([]string, len(s.columns))
	copy(columns, s.columns)
	return columns
}

// Column returns the info for a named column.
func (s *Schema) Column(name string) (ColumnInfo, bool) {
	info, ok := s.info[name]
	return info, ok
}

// HasColumn reports whether the schema contains the named column.
func (s *Schema) HasColumn(name string) bool {
	_, ok := s.info[name]
	return ok
}
