package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_IntRoundTrip(t *testing.T) {
	p := NewPage(128)
	p.SetInt(0, 42)
	p.SetInt(4, -7)
	p.SetInt(60, 1<<30)

	assert.Equal(t, 42, p.GetInt(0))
	assert.Equal(t, -7, p.GetInt(4))
	assert.Equal(t, 1<<30, p.GetInt(60))
}

func TestPage_StringRoundTrip(t *testing.T) {
	p := NewPage(128)
	p.SetString(8, "hello")
	assert.Equal(t, "hello", p.GetString(8))

	p.SetString(40, "")
	assert.Equal(t, "", p.GetString(40))

	assert.Equal(t, 4+5, MaxLength(5))
}

func TestManager_AppendAndCount(t *testing.T) {
	fm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)
	defer fm.Close()

	assert.Equal(t, 128, fm.BlockSize())

	n, err := fm.BlockCount("t.tbl")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "a new file has no blocks")

	blk, err := fm.Append("t.tbl")
	require.NoError(t, err)
	assert.Equal(t, 0, blk.Number())

	blk, err = fm.Append("t.tbl")
	require.NoError(t, err)
	assert.Equal(t, 1, blk.Number())

	n, err = fm.BlockCount("t.tbl")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestManager_WriteRead(t *testing.T) {
	fm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)
	defer fm.Close()

	blk, err := fm.Append("t.tbl")
	require.NoError(t, err)

	out := NewPage(fm.BlockSize())
	out.SetInt(0, 99)
	out.SetString(20, "persisted")
	require.NoError(t, fm.Write(blk, out))

	in := NewPage(fm.BlockSize())
	require.NoError(t, fm.Read(blk, in))
	assert.Equal(t, 99, in.GetInt(0))
	assert.Equal(t, "persisted", in.GetString(20))
}

func TestManager_AppendZeroesBlock(t *testing.T) {
	fm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)
	defer fm.Close()

	blk, err := fm.Append("t.tbl")
	require.NoError(t, err)

	p := NewPage(fm.BlockSize())
	require.NoError(t, fm.Read(blk, p))
	for _, b := range p.Contents() {
		require.Zero(t, b, "appended blocks start zeroed")
	}
}

func TestManager_ReadPastEnd(t *testing.T) {
	fm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)
	defer fm.Close()

	p := NewPage(fm.BlockSize())
	err = fm.Read(NewBlockID("t.tbl", 5), p)
	assert.Error(t, err, "reading a block past the end of the file fails")

	err = fm.Read(NewBlockID("t.tbl", -1), p)
	assert.Error(t, err)
}

func TestManager_Remove(t *testing.T) {
	fm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)
	defer fm.Close()

	_, err = fm.Append("t.tbl")
	require.NoError(t, err)
	require.NoError(t, fm.Remove("t.tbl"))

	n, err := fm.BlockCount("t.tbl")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "the file is recreated empty after removal")
}

func TestBlockID(t *testing.T) {
	blk := NewBlockID("users.tbl", 3)
	assert.Equal(t, "users.tbl", blk.Filename())
	assert.Equal(t, 3, blk.Number())
	assert.Equal(t, NewBlockID("users.tbl", 3), blk)
	assert.NotEqual(t, NewBlockID("users.tbl", 4), blk)
}
