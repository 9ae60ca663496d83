package scan

// Scan is a rewindable iterator over the rows of a relation. BeforeFirst
// must reposition the scan so that the following Next calls replay the
// same row sequence as the previous pass.
type Scan interface {
	// BeforeFirst positions the scan before the first row.
	BeforeFirst() error
	// Next advances to the next row, returning false at the end.
	Next() (bool, error)
	// GetInt reads an integer column of the current row.
	GetInt(column string) (int, error)
	// GetString reads a string column of the current row.
	GetString(column string) (string, error)
	// HasColumn reports whether the scan's rows carry the named column.
	HasColumn(column string) bool
	// Close releases the scan's resources.
	Close()
}
