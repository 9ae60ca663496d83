package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robindb/robindb/internal/record"
)

// LoadCSV appends the rows of comma-separated data to an existing table.
// The first line must be a header naming a subset of the table's columns;
// integer cells are parsed, string cells are stored as-is. It returns the
// number of rows loaded.
func (m *Manager) LoadCSV(tableName string, r io.Reader) (int, error) {
	tbl, ok := m.Table(tableName)
	if !ok {
		return 0, fmt.Errorf("table %s does not exist", tableName)
	}
	sch := tbl.Schema()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		if !sch.HasColumn(header[i]) {
			return 0, fmt.Errorf("csv column %q not in table %s", header[i], tableName)
		}
	}

	ts, err := tbl.Open()
	if err != nil {
		return 0, err
	}
	defer ts.Close()

	rows := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read csv row %d: %w", rows+1, err)
		}
		if err := ts.Insert(); err != nil {
			return rows, err
		}
		for i, col := range header {
			info, _ := sch.Column(col)
			switch info.Type {
			case record.Integer:
				v, err := strconv.Atoi(strings.TrimSpace(rec[i]))
				if err != nil {
					return rows, fmt.Errorf("row %d, column %s: %w", rows+1, col, err)
				}
				if err := ts.SetInt(col, v); err != nil {
					return rows, err
				}
			case record.Varchar:
				if err := ts.SetString(col, rec[i]); err != nil {
					return rows, err
				}
			}
		}
		rows++
	}
	return rows, nil
}
