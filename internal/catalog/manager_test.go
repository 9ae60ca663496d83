package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robindb/robindb/internal/file"
	"github.com/robindb/robindb/internal/record"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	fm, err := file.NewManager(t.TempDir(), 400)
	require.NoError(t, err)
	t.Cleanup(func() { fm.Close() })
	return NewManager(fm)
}

func usersSchema() *record.Schema {
	sch := record.NewSchema()
	sch.AddIntColumn("id")
	sch.AddStringColumn("name", 16)
	return sch
}

func TestManager_CreateTable(t *testing.T) {
	m := newManager(t)

	tbl, err := m.CreateTable("users", usersSchema())
	require.NoError(t, err)
	assert.Equal(t, "users", tbl.Name())
	assert.Equal(t, []string{"id", "name"}, tbl.Schema().Columns())

	_, err = m.CreateTable("users", usersSchema())
	assert.Error(t, err, "duplicate table name")

	got, ok := m.Table("users")
	require.True(t, ok)
	assert.Same(t, tbl, got)

	_, ok = m.Table("missing")
	assert.False(t, ok)
}

func TestManager_CreateTableSlotTooLarge(t *testing.T) {
	fm, err := file.NewManager(t.TempDir(), 32)
	require.NoError(t, err)
	defer fm.Close()
	m := NewManager(fm)

	// Slot is 4 + 4 + (4 + 64) = 76 bytes against 32-byte blocks; such a
	// table could never hold a record, so creation must fail.
	sch := record.NewSchema()
	sch.AddIntColumn("id")
	sch.AddStringColumn("name", 64)
	_, err = m.CreateTable("users", sch)
	assert.Error(t, err)

	small := record.NewSchema()
	small.AddIntColumn("id")
	_, err = m.CreateTable("users", small)
	assert.NoError(t, err, "a fitting schema is accepted")
}

func TestManager_TableNamesSorted(t *testing.T) {
	m := newManager(t)
	for _, name := range []string{"zebra", "apple", "mango"} {
		_, err := m.CreateTable(name, usersSchema())
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"apple", "mango", "zebra"}, m.TableNames())
}

func TestManager_DropTable(t *testing.T) {
	m := newManager(t)
	tbl, err := m.CreateTable("users", usersSchema())
	require.NoError(t, err)

	ts, err := tbl.Open()
	require.NoError(t, err)
	require.NoError(t, ts.Insert())
	require.NoError(t, ts.SetInt("id", 1))
	require.NoError(t, ts.SetString("name", "alice"))
	ts.Close()

	require.NoError(t, m.DropTable("users"))
	_, ok := m.Table("users")
	assert.False(t, ok)
	assert.Error(t, m.DropTable("users"))

	// Recreating the table starts from an empty file.
	tbl, err = m.CreateTable("users", usersSchema())
	require.NoError(t, err)
	ts, err = tbl.Open()
	require.NoError(t, err)
	defer ts.Close()
	require.NoError(t, ts.BeforeFirst())
	ok, err = ts.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_TableRoundTrip(t *testing.T) {
	m := newManager(t)
	tbl, err := m.CreateTable("users", usersSchema())
	require.NoError(t, err)

	ts, err := tbl.Open()
	require.NoError(t, err)
	defer ts.Close()
	require.NoError(t, ts.Insert())
	require.NoError(t, ts.SetInt("id", 7))
	require.NoError(t, ts.SetString("name", "grace"))

	require.NoError(t, ts.BeforeFirst())
	ok, err := ts.Next()
	require.NoError(t, err)
	require.True(t, ok)
	id, err := ts.GetInt("id")
	require.NoError(t, err)
	name, err := ts.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Equal(t, "grace", name)

	pages, err := tbl.Pages()
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestManager_LoadCSV(t *testing.T) {
	m := newManager(t)
	_, err := m.CreateTable("users", usersSchema())
	require.NoError(t, err)

	data := "id,name\n1,alice\n2,bob\n3,carol\n"
	n, err := m.LoadCSV("users", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tbl, _ := m.Table("users")
	ts, err := tbl.Open()
	require.NoError(t, err)
	defer ts.Close()
	require.NoError(t, ts.BeforeFirst())
	var names []string
	for {
		ok, err := ts.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		name, err := ts.GetString("name")
		require.NoError(t, err)
		names = append(names, name)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, names)
}

func TestManager_LoadCSVErrors(t *testing.T) {
	m := newManager(t)
	_, err := m.CreateTable("users", usersSchema())
	require.NoError(t, err)

	_, err = m.LoadCSV("missing", strings.NewReader("id\n1\n"))
	assert.Error(t, err)

	_, err = m.LoadCSV("users", strings.NewReader("id,salary\n1,100\n"))
	assert.Error(t, err, "header column not in schema")

	_, err = m.LoadCSV("users", strings.NewReader("id,name\nnotanumber,alice\n"))
	assert.Error(t, err, "unparsable integer cell")
}

func TestManager_LoadCSVSubsetHeader(t *testing.T) {
	m := newManager(t)
	_, err := m.CreateTable("users", usersSchema())
	require.NoError(t, err)

	n, err := m.LoadCSV("users", strings.NewReader("name\nalice\nbob\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
