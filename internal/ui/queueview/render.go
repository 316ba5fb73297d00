package queueview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/ui/render"
	"github.com/shershen08/playsync/internal/ui/styles"
)

// Render draws the header and as many rows as fit in height, keeping the
// cursor row visible. cursor is clamped to the row range.
func Render(m Model, cursor, width, height int) string {
	s := styles.T().S()
	innerWidth := max(width-2, 10)

	lines := []string{renderHeader(m.Header, innerWidth), s.Subtle.Render(render.Separator(innerWidth))}

	body := max(height-2-len(lines), 1)
	switch {
	case m.Loading && len(m.Rows) == 0:
		lines = append(lines, s.Muted.Render("Loading tracks..."))
	case len(m.Rows) == 0:
		lines = append(lines, s.Muted.Render("No tracks"))
	default:
		cursor = min(max(cursor, 0), len(m.Rows)-1)
		start := scrollStart(cursor, len(m.Rows), body)
		end := min(start+body, len(m.Rows))
		for i := start; i < end; i++ {
			lines = append(lines, renderRow(m.Rows[i], i == cursor, innerWidth))
		}
	}

	return styles.Panel().Width(innerWidth).Render(strings.Join(lines, "\n"))
}

func renderHeader(h Header, width int) string {
	s := styles.T().S()
	left := styles.Gradient(h.Title, styles.T().Primary, styles.T().Secondary) + "  " + s.Muted.Render(h.Count+" · "+h.Total)

	var right []string
	if h.Synced != "" {
		right = append(right, s.Subtle.Render(h.Synced))
	}
	right = append(right, connectionStyle(h.Connection).Render(ConnectionLabel(h.Connection)))
	return render.Row(left, strings.Join(right, "  "), width)
}

func connectionStyle(st channel.Status) lipgloss.Style {
	s := styles.T().S()
	switch st {
	case channel.Connected:
		return s.Success
	case channel.Connecting:
		return s.Warning
	default:
		return s.Error
	}
}

func renderRow(r Row, cursor bool, width int) string {
	s := styles.T().S()

	marker := " "
	if r.Active {
		marker = activeMarker
	}
	num := fmt.Sprintf("%3d", r.Number)
	dur := render.Pad(r.Duration, 6)

	// marker, number and duration columns with single-space gaps
	titleWidth := max(width-lipgloss.Width(marker)-len(num)-6-3, 4)
	artistWidth := titleWidth / 3
	titleWidth -= artistWidth

	line := marker + " " + num + " " +
		render.TruncateAndPad(r.Title, titleWidth) +
		render.TruncateAndPad(r.Artist, artistWidth) + " " + dur

	style := s.Base
	if r.Active {
		style = s.Active
	}
	if cursor {
		style = style.Background(styles.T().BgCursor)
	}
	return style.Render(line)
}

// scrollStart returns the first visible row so that cursor stays in view.
func scrollStart(cursor, total, visible int) int {
	if total <= visible {
		return 0
	}
	start := max(cursor-visible/2, 0)
	return min(start, total-visible)
}
