package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	return []Item{
		{ID: "track_1", Title: "Bohemian Rhapsody", Artist: "Queen", DurationMs: 354000},
		{ID: "track_2", Title: "Hotel California", Artist: "Eagles", DurationMs: 391000},
		{ID: "track_3", Title: "Stairway to Heaven", Artist: "Led Zeppelin", DurationMs: 482000},
	}
}

func TestQueue_Lookup(t *testing.T) {
	q := NewQueue("42", sampleItems())

	it, ok := q.Lookup("track_2")
	require.True(t, ok)
	assert.Equal(t, "Hotel California", it.Title)

	_, ok = q.Lookup("missing")
	assert.False(t, ok)
}

func TestQueue_IndexOf(t *testing.T) {
	q := NewQueue("42", sampleItems())

	assert.Equal(t, 0, q.IndexOf("track_1"))
	assert.Equal(t, 2, q.IndexOf("track_3"))
	assert.Equal(t, -1, q.IndexOf("nope"))
}

func TestQueue_DuplicateIDsResolveToFirst(t *testing.T) {
	items := append(sampleItems(), Item{ID: "track_1", Title: "Duplicate"})
	q := NewQueue("42", items)

	it, _ := q.Lookup("track_1")
	assert.Equal(t, "Bohemian Rhapsody", it.Title)
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, 0, q.IndexOf("track_1"))
	assert.Equal(t, 2, q.IndexOf("track_3"))
}

func TestQueue_ClampsNegativeDuration(t *testing.T) {
	q := NewQueue("1", []Item{{ID: "a", DurationMs: -5}})

	it, _ := q.Lookup("a")
	assert.Equal(t, int64(0), it.DurationMs)
}

func TestQueue_ItemsIsACopy(t *testing.T) {
	q := NewQueue("42", sampleItems())

	items := q.Items()
	items[0].Title = "changed"

	it, _ := q.At(0)
	assert.Equal(t, "Bohemian Rhapsody", it.Title)
}

func TestQueue_Empty(t *testing.T) {
	var q Queue
	assert.True(t, q.IsEmpty())
	assert.Equal(t, -1, q.IndexOf("x"))
	_, ok := q.At(0)
	assert.False(t, ok)
}

func TestQueue_TotalDurationMs(t *testing.T) {
	q := NewQueue("42", sampleItems())
	assert.Equal(t, int64(354000+391000+482000), q.TotalDurationMs())
}

func TestItem_JSON(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"id":"track_4","name":"Imagine","artist":"John Lennon","album":"Imagine","duration_ms":183000,"image_url":"https://example.com/4.png"}`), &it)
	require.NoError(t, err)

	assert.Equal(t, Item{
		ID:         "track_4",
		Title:      "Imagine",
		Artist:     "John Lennon",
		Album:      "Imagine",
		DurationMs: 183000,
		ImageURL:   "https://example.com/4.png",
	}, it)
}
