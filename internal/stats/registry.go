package stats

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/robindb/robindb/internal/catalog"
)

// Registry is the process-wide mapping from table name to its published
// statistics, read concurrently by the planner. Writers build a complete
// TableStats off to the side and publish it with a single map write, so
// a reader always sees either the previous fully-built entry or the new
// one, never a partial build.
type Registry struct {
	catalog       *catalog.Manager
	ioCostPerPage float64

	mu    sync.RWMutex
	stats map[string]*TableStats
}

// NewRegistry creates an empty registry over the given catalog.
func NewRegistry(cat *catalog.Manager, ioCostPerPage float64) *Registry {
	return &Registry{
		catalog:       cat,
		ioCostPerPage: ioCostPerPage,
		stats:         make(map[string]*TableStats),
	}
}

// Get returns the last published statistics for a table, if any.
func (r *Registry) Get(table string) (*TableStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.stats[table]
	return st, ok
}

// Set publishes statistics for one table, replacing any prior entry.
func (r *Registry) Set(table string, st *TableStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats[table] = st
}

// ReplaceAll swaps the whole mapping. Meant for injecting fixture
// statistics without scanning anything.
func (r *Registry) ReplaceAll(stats map[string]*TableStats) {
	replacement := make(map[string]*TableStats, len(stats))
	for name, st := range stats {
		replacement[name] = st
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = replacement
}

// StatsFor returns published statistics for a table, computing and
// publishing them first if none exist yet. Concurrent callers may both
// compute; each publishes a complete build, so the race is harmless.
func (r *Registry) StatsFor(table string) (*TableStats, error) {
	if st, ok := r.Get(table); ok {
		return st, nil
	}
	tbl, ok := r.catalog.Table(table)
	if !ok {
		return nil, fmt.Errorf("unknown table %s", table)
	}
	st, err := NewTableStats(tbl, r.ioCostPerPage)
	if err != nil {
		return nil, err
	}
	r.Set(table, st)
	return st, nil
}

// RecomputeAll rebuilds statistics for every table in the catalog, one
// full two-pass scan per table. A table whose build fails keeps its
// previous entry; the remaining tables are still recomputed, and the
// failures are returned joined together.
func (r *Registry) RecomputeAll() error {
	log.Printf("[STATS] recomputing statistics for %d tables", len(r.catalog.TableNames()))
	var errs []error
	for _, name := range r.catalog.TableNames() {
		tbl, ok := r.catalog.Table(name)
		if !ok {
			// Dropped between enumeration and build.
			continue
		}
		st, err := NewTableStats(tbl, r.ioCostPerPage)
		if err != nil {
			log.Printf("[STATS] %s: build failed: %v", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		r.Set(name, st)
		log.Printf("[STATS] %s: %d rows, %d pages", name, st.TotalTuples(), st.Pages())
	}
	return errors.Join(errs...)
}
