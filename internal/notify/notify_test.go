package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shershen08/playsync/internal/catalog"
)

func TestNowPlaying(t *testing.T) {
	item := catalog.Item{ID: "track_1", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera"}

	n := NowPlaying(item, 7)

	assert.Equal(t, Notification{
		Title:      "Now playing",
		Body:       "Bohemian Rhapsody\nQueen · A Night at the Opera",
		Icon:       iconPlay,
		Category:   CategoryTrack,
		Timeout:    trackTimeout,
		ReplacesID: 7,
		Urgency:    UrgencyLow,
	}, n)
}

func TestResumed(t *testing.T) {
	n := Resumed(catalog.Item{Title: "Imagine"}, 95000, 0)

	assert.Equal(t, "Resumed at 1:35", n.Title)
	assert.Equal(t, "Imagine", n.Body)
	assert.Equal(t, uint32(0), n.ReplacesID)
	assert.Equal(t, CategoryTrack, n.Category)
}

func TestConnectionLost(t *testing.T) {
	n := ConnectionLost()

	assert.Equal(t, "Sync connection lost", n.Title)
	assert.Equal(t, UrgencyCritical, n.Urgency)
	assert.Equal(t, CategoryNetwork, n.Category)
	assert.Equal(t, int32(-1), n.Timeout)
}

func TestByline(t *testing.T) {
	assert.Equal(t, "Queen · A Night at the Opera", byline("Queen", "A Night at the Opera"))
	assert.Equal(t, "Eagles", byline("Eagles", " "))
	assert.Equal(t, "", byline("", ""))
}
