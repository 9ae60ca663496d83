package stats

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robindb/robindb/internal/catalog"
	"github.com/robindb/robindb/internal/file"
	"github.com/robindb/robindb/internal/query"
	"github.com/robindb/robindb/internal/record"
)

func TestRegistry_SetGet(t *testing.T) {
	cat := newTestCatalog(t)
	tblA := createValuesTable(t, cat, "A", []int{1, 2, 3})

	reg := NewRegistry(cat, CostPerPage)
	statsA, err := NewTableStats(tblA, CostPerPage)
	require.NoError(t, err)

	reg.Set("A", statsA)
	got, ok := reg.Get("A")
	require.True(t, ok)
	assert.Same(t, statsA, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_StatsForComputesOnDemand(t *testing.T) {
	cat := newTestCatalog(t)
	createValuesTable(t, cat, "A", []int{1, 2, 3, 4})

	reg := NewRegistry(cat, CostPerPage)
	_, ok := reg.Get("A")
	require.False(t, ok, "nothing published before the first request")

	st, err := reg.StatsFor("A")
	require.NoError(t, err)
	assert.Equal(t, 4, st.TotalTuples())

	published, ok := reg.Get("A")
	require.True(t, ok, "on-demand stats are published")
	assert.Same(t, st, published)

	again, err := reg.StatsFor("A")
	require.NoError(t, err)
	assert.Same(t, st, again, "second request reuses the published entry")

	_, err = reg.StatsFor("missing")
	assert.Error(t, err)
}

func TestRegistry_RecomputeAll(t *testing.T) {
	cat := newTestCatalog(t)
	createValuesTable(t, cat, "A", []int{1, 2, 3})
	createValuesTable(t, cat, "B", []int{10, 20, 30, 40, 50})

	reg := NewRegistry(cat, CostPerPage)
	require.NoError(t, reg.RecomputeAll())

	stA, ok := reg.Get("A")
	require.True(t, ok)
	assert.Equal(t, 3, stA.TotalTuples())

	stB, ok := reg.Get("B")
	require.True(t, ok)
	assert.Equal(t, 5, stB.TotalTuples())

	// Each entry answers independently.
	assert.InDelta(t, 1.0/3.0, stA.EstimateSelectivity("v", query.Equals, query.NewIntConstant(2)), 1e-9)
	assert.InDelta(t, 0.2, stB.EstimateSelectivity("v", query.Equals, query.NewIntConstant(30)), 1e-9)
}

func TestRegistry_RecomputePicksUpNewRows(t *testing.T) {
	cat := newTestCatalog(t)
	tbl := createValuesTable(t, cat, "A", []int{1, 2})

	reg := NewRegistry(cat, CostPerPage)
	require.NoError(t, reg.RecomputeAll())
	st1, _ := reg.Get("A")
	assert.Equal(t, 2, st1.TotalTuples())

	ts, err := tbl.Open()
	require.NoError(t, err)
	require.NoError(t, ts.Insert())
	require.NoError(t, ts.SetInt("v", 3))
	ts.Close()

	// Published stats are immutable snapshots; only recomputation moves
	// them forward.
	st2, _ := reg.Get("A")
	assert.Equal(t, 2, st2.TotalTuples())

	require.NoError(t, reg.RecomputeAll())
	st3, _ := reg.Get("A")
	assert.Equal(t, 3, st3.TotalTuples())
	assert.NotSame(t, st1, st3)
}

func TestRegistry_RecomputeAllKeepsEntryOnFailure(t *testing.T) {
	dir := t.TempDir()
	fm, err := file.NewManager(dir, 400)
	require.NoError(t, err)
	defer fm.Close()
	cat := catalog.NewManager(fm)

	createValuesTable(t, cat, "A", []int{1, 2, 3})
	createValuesTable(t, cat, "B", []int{10, 20, 30})

	reg := NewRegistry(cat, CostPerPage)
	require.NoError(t, reg.RecomputeAll())
	stale, ok := reg.Get("A")
	require.True(t, ok)
	oldB, ok := reg.Get("B")
	require.True(t, ok)

	// Break A's storage: its table file becomes a directory, so the next
	// build scan cannot open it.
	require.NoError(t, fm.Remove(record.TableFile("A")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, record.TableFile("A")), 0o755))

	err = reg.RecomputeAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A")

	kept, ok := reg.Get("A")
	require.True(t, ok, "a failed build keeps the previous entry")
	assert.Same(t, stale, kept)

	stB, ok := reg.Get("B")
	require.True(t, ok, "the remaining tables still republish")
	assert.NotSame(t, oldB, stB)
	assert.Equal(t, 3, stB.TotalTuples())
}

func TestRegistry_ReplaceAll(t *testing.T) {
	cat := newTestCatalog(t)
	tblA := createValuesTable(t, cat, "A", []int{1})
	statsA, err := NewTableStats(tblA, CostPerPage)
	require.NoError(t, err)

	reg := NewRegistry(cat, CostPerPage)
	reg.Set("old", statsA)

	fixtures := map[string]*TableStats{"ghost": statsA}
	reg.ReplaceAll(fixtures)

	_, ok := reg.Get("old")
	assert.False(t, ok, "replacement drops prior entries")
	_, ok = reg.Get("ghost")
	assert.True(t, ok)

	// Mutating the caller's map after the swap must not reach the
	// registry.
	delete(fixtures, "ghost")
	_, ok = reg.Get("ghost")
	assert.True(t, ok)

	// Recomputation only touches catalog tables; injected entries for
	// tables the catalog does not know survive.
	require.NoError(t, reg.RecomputeAll())
	_, ok = reg.Get("ghost")
	assert.True(t, ok)
	_, ok = reg.Get("A")
	assert.True(t, ok)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	cat := newTestCatalog(t)
	tblA := createValuesTable(t, cat, "A", []int{1, 2, 3})
	statsA, err := NewTableStats(tblA, CostPerPage)
	require.NoError(t, err)

	reg := NewRegistry(cat, CostPerPage)
	reg.Set("A", statsA)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if st, ok := reg.Get("A"); ok {
					_ = st.EstimateScanCost()
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Set("A", statsA)
			}
		}()
	}
	wg.Wait()

	st, ok := reg.Get("A")
	require.True(t, ok)
	assert.Equal(t, 3, st.TotalTuples())
}
