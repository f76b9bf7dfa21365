package binding

import (
	"sync"

	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
)

// DefaultTableCapacity is the default number of binding slots.
const DefaultTableCapacity = 10

// TableConfig configures a binding table.
type TableConfig struct {
	// Capacity is the number of slots. Defaults to DefaultTableCapacity if zero.
	Capacity int
}

// Table is an in-memory, ordered binding table.
// It is safe for concurrent use.
type Table struct {
	entries  []Entry
	capacity int

	mu sync.RWMutex
}

// NewTable creates an empty binding table.
func NewTable(config TableConfig) *Table {
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = DefaultTableCapacity
	}
	return &Table{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Add validates and appends an entry, returning its index.
func (t *Table) Add(e Entry) (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= t.capacity {
		return 0, ErrTableFull
	}
	t.entries = append(t.entries, cloneEntry(e))
	return len(t.entries) - 1, nil
}

// Remove deletes the entry at index. Later entries move up one slot.
func (t *Table) Remove(index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.entries) {
		return ErrIndexOutOfRange
	}
	t.entries = append(t.entries[:index], t.entries[index+1:]...)
	return nil
}

// RemoveFabric deletes every entry of the fabric and returns how many were removed.
func (t *Table) RemoveFabric(fabricIndex fabric.FabricIndex) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.FabricIndex != fabricIndex || e.Type == TypeUnused {
			kept = append(kept, e)
		}
	}
	removed := len(t.entries) - len(kept)
	t.entries = kept
	return removed
}

// Get returns the entry at index.
func (t *Table) Get(index int) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if index < 0 || index >= len(t.entries) {
		return Entry{}, false
	}
	return cloneEntry(t.entries[index]), true
}

// Size returns the number of entries.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Capacity returns the number of slots.
func (t *Table) Capacity() int {
	return t.capacity
}

// ForEach calls fn for each entry in table order until fn returns false.
// fn runs on a snapshot, so it may modify the table.
func (t *Table) ForEach(fn func(index int, e Entry) bool) {
	for i, e := range t.Entries() {
		if !fn(i, e) {
			return
		}
	}
}

// Entries returns a copy of all entries in table order.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		result[i] = cloneEntry(e)
	}
	return result
}

func cloneEntry(e Entry) Entry {
	if e.ClusterID != nil {
		c := *e.ClusterID
		e.ClusterID = &c
	}
	return e
}
