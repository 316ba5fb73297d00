package playerbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/playback"
	"github.com/shershen08/playsync/internal/session"
)

func testView(state session.State) playback.View {
	return playback.View{
		QueueID:     "42",
		QueueLoaded: true,
		Queue: catalog.NewQueue("42", []catalog.Item{
			{ID: "track_1", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", DurationMs: 354000},
			{ID: "track_2", Title: "Imagine", Artist: "John Lennon", DurationMs: 183000},
		}),
		State: state,
	}
}

func TestNewState(t *testing.T) {
	s := NewState(testView(session.State{SelectedItemID: "track_2", PositionMs: 65000, Playing: true}))

	assert.Equal(t, State{
		Active:     true,
		Playing:    true,
		Title:      "Imagine",
		Artist:     "John Lennon",
		PositionMs: 65000,
		DurationMs: 183000,
		Index:      2,
		Total:      2,
	}, s)
}

func TestNewState_NoSelection(t *testing.T) {
	assert.Equal(t, State{}, NewState(testView(session.State{})))
	assert.Empty(t, Render(State{}, 80))
}

func TestRender(t *testing.T) {
	s := NewState(testView(session.State{SelectedItemID: "track_1", PositionMs: 83000}))

	out := Render(s, 100)

	assert.Contains(t, out, "Bohemian Rhapsody")
	assert.Contains(t, out, "1:23")
	assert.Contains(t, out, "5:54")
	assert.Contains(t, out, pauseSymbol)
	assert.Contains(t, out, "1/2")
	assert.Len(t, strings.Split(out, "\n"), Height)
	assert.LessOrEqual(t, lipgloss.Width(out), 100)
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		pos     int64
		dur     int64
		width   int
		playing bool
		prefix  string
	}{
		{"playing", 30000, 120000, 40, true, playSymbol + "  0:30"},
		{"paused", 0, 120000, 40, false, pauseSymbol + "  0:00"},
		{"zero duration", 0, 0, 40, true, playSymbol + "  0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgressBar(tt.pos, tt.dur, tt.width, tt.playing)
			assert.True(t, strings.HasPrefix(got, tt.prefix), got)
			assert.Equal(t, tt.width, lipgloss.Width(got))
		})
	}
}

func TestRenderProgressBar_Narrow(t *testing.T) {
	got := RenderProgressBar(5000, 60000, 10, true)
	assert.Equal(t, playSymbol+"  0:05 / 1:00", got)
}
