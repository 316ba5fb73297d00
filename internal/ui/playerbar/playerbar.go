// Package playerbar renders the one-line now-playing bar.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shershen08/playsync/internal/playback"
	"github.com/shershen08/playsync/internal/ui/render"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// State holds everything needed to render the player bar.
type State struct {
	Active     bool
	Playing    bool
	Title      string
	Artist     string
	Album      string
	PositionMs int64
	DurationMs int64
	Index      int // 1-based position in the queue
	Total      int
}

// Height is the rendered height: top border, content, bottom border.
const Height = 3

// NewState projects a controller view. Returns an empty State when no item
// is selected.
func NewState(v playback.View) State {
	item, ok := v.SelectedItem()
	if !ok {
		return State{}
	}
	return State{
		Active:     true,
		Playing:    v.State.Playing,
		Title:      item.Title,
		Artist:     item.Artist,
		Album:      item.Album,
		PositionMs: v.State.PositionMs,
		DurationMs: item.DurationMs,
		Index:      v.Queue.IndexOf(item.ID) + 1,
		Total:      v.Queue.Len(),
	}
}

// Render returns the player bar for the given width, or "" when idle.
func Render(s State, width int) string {
	if !s.Active {
		return ""
	}
	innerWidth := max(width-6, 0)

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	var infoParts []string
	if s.Artist != "" {
		infoParts = append(infoParts, s.Artist)
	}
	if s.Album != "" {
		infoParts = append(infoParts, s.Album)
	}
	info := strings.Join(infoParts, " · ")

	bar := RenderProgressBar(s.PositionMs, s.DurationMs, max(innerWidth/2, 16), s.Playing)
	counter := ""
	if s.Total > 0 && s.Index > 0 {
		counter = fmt.Sprintf("%d/%d", s.Index, s.Total)
	}

	right := bar
	if counter != "" {
		right = metaStyle.Render(counter) + "   " + bar
	}
	leftWidth := max(innerWidth-lipgloss.Width(right)-3, 0)

	left := titleStyle.Render(render.TruncateEllipsis(title, leftWidth))
	if rest := leftWidth - lipgloss.Width(left) - 3; info != "" && rest > 3 {
		left += "   " + artistStyle.Render(render.TruncateEllipsis(info, rest))
	}

	return barStyle.Padding(0, 2).Width(max(width-2, 0)).Render(render.Row(left, right, innerWidth))
}
