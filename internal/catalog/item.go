// Package catalog loads the ordered list of playable items for a queue.
package catalog

import (
	"github.com/samber/lo"

	"github.com/shershen08/playsync/internal/wire"
)

// Item is a single playable track. The catalog calls the title "name".
type Item struct {
	ID         string `json:"id"`
	Title      string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	DurationMs int64  `json:"duration_ms"`
	ImageURL   string `json:"image_url,omitempty"`
}

// Queue is an ordered, read-only sequence of items keyed by a queue id.
type Queue struct {
	ID    wire.QueueID
	items []Item
	index map[string]int
}

// NewQueue builds a queue. Negative durations are clamped to zero and later
// duplicates of an id are ignored for lookups.
func NewQueue(id wire.QueueID, items []Item) Queue {
	cp := make([]Item, len(items))
	for i, it := range items {
		it.DurationMs = max(it.DurationMs, 0)
		cp[i] = it
	}
	first := lo.UniqBy(lo.Range(len(cp)), func(i int) string { return cp[i].ID })
	index := lo.SliceToMap(first, func(i int) (string, int) { return cp[i].ID, i })
	return Queue{ID: id, items: cp, index: index}
}

// Items returns a copy of the items in order.
func (q Queue) Items() []Item {
	return append([]Item(nil), q.items...)
}

// Len returns the number of items.
func (q Queue) Len() int { return len(q.items) }

// IsEmpty returns true if the queue has no items.
func (q Queue) IsEmpty() bool { return len(q.items) == 0 }

// Lookup resolves an item id.
func (q Queue) Lookup(id string) (Item, bool) {
	i, ok := q.index[id]
	if !ok {
		return Item{}, false
	}
	return q.items[i], true
}

// IndexOf returns the position of an item id, or -1.
func (q Queue) IndexOf(id string) int {
	if i, ok := q.index[id]; ok {
		return i
	}
	return -1
}

// At returns the item at index i.
func (q Queue) At(i int) (Item, bool) {
	if i < 0 || i >= len(q.items) {
		return Item{}, false
	}
	return q.items[i], true
}

// TotalDurationMs sums the durations of all items.
func (q Queue) TotalDurationMs() int64 {
	return lo.SumBy(q.items, func(it Item) int64 { return it.DurationMs })
}
