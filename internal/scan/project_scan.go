package scan

import "fmt"

// ProjectScan restricts an underlying scan to a subset of its columns.
type ProjectScan struct {
	s       Scan
	columns map[string]bool
}

// NewProjectScan wraps s, exposing only the named columns.
func NewProjectScan(s Scan, columns []string) *ProjectScan {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return &ProjectScan{s: s, columns: set}
}

func (ps *ProjectScan) BeforeFirst() error {
	return ps.s.BeforeFirst()
}

func (ps *ProjectScan) Next() (bool, error) {
	return ps.s.Next()
}

func (ps *ProjectScan) GetInt(column string) (int, error) {
	if !ps.columns[column] {
		return 0, fmt.Errorf("column %q not in projection", column)
	}
	return ps.s.GetInt(column)
}

func (ps *ProjectScan) GetString(column string) (string, error) {
	if !ps.columns[column] {
		return "", fmt.Errorf("column %q not in projection", column)
	}
	return ps.s.GetString(column)
}

func (ps *ProjectScan) HasColumn(column string) bool {
	return ps.columns[column] && ps.s.HasColumn(column)
}

func (ps *ProjectScan) Close() {
	ps.s.Close()
}
