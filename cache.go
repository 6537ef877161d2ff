package buslocator

import (
	"sync"
	"time"

	"github.com/open-bus-tools/israel-bus-locator/analysis"
	"github.com/open-bus-tools/israel-bus-locator/locations"
)

// Snapshot is one fetched-and-analyzed view of the tracked line.
type Snapshot struct {
	Table     *locations.Table
	Distances map[string]analysis.Summary
	Reference analysis.Point
	FetchedAt time.Time
}

// SnapshotCache hands the latest snapshot from the refresher to the HTTP
// handlers. The analysis core itself stays single threaded; this is the
// only state shared between goroutines.
type SnapshotCache struct {
	mu      sync.RWMutex
	current *Snapshot
}

func NewSnapshotCache() *SnapshotCache { return &SnapshotCache{} }

// Current returns the latest snapshot, or false when nothing has been
// fetched yet.
func (c *SnapshotCache) Current() (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil, false
	}
	return c.current, true
}

// Set replaces the latest snapshot.
func (c *SnapshotCache) Set(s *Snapshot) {
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
}
