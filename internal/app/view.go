package app

import (
	"strings"

	"github.com/shershen08/playsync/internal/ui/playerbar"
	"github.com/shershen08/playsync/internal/ui/queueview"
	"github.com/shershen08/playsync/internal/ui/render"
	"github.com/shershen08/playsync/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	footerHeight  = 1
)

// View implements tea.Model.
func (m Model) View() string {
	width, height := m.size()
	v := m.Service.View()

	qm := queueview.Project(v, m.now())
	queue := queueview.Render(qm, m.Cursor, width, m.queueHeight())
	if qm.Loading {
		// Spinner sits in the footer while the catalog loads.
		queue = strings.Replace(queue, "Loading tracks...", m.spinner.View()+" Loading tracks...", 1)
	}

	parts := []string{queue}
	if bar := playerbar.Render(playerbar.NewState(v), width); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.footer(width))

	out := strings.Join(parts, "\n")
	if lines := strings.Count(out, "\n") + 1; lines < height {
		out += strings.Repeat("\n", height-lines)
	}
	return out
}

func (m Model) footer(width int) string {
	s := styles.T().S()
	if m.ErrorMsg != "" {
		return s.Error.Render(render.Truncate(m.ErrorMsg, width))
	}
	if m.ShowHelp {
		help := m.keys.Help("playback") + " · " + m.keys.Help("queue") + " · " + m.keys.Help("global")
		return s.Subtle.Render(render.Truncate(help, width))
	}
	return s.Subtle.Render(render.Truncate("enter play · space play/pause · ? help · q quit", width))
}

// queueHeight is what remains for the queue panel after the player bar and
// footer.
func (m Model) queueHeight() int {
	_, height := m.size()
	h := height - footerHeight
	if m.Service.View().State.HasSelection() {
		h -= playerbar.Height
	}
	return max(h, 5)
}

func (m Model) size() (int, int) {
	w, h := m.Width, m.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
