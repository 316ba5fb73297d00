package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shershen08/playsync/internal/ui/render"
)

// RenderProgressBar renders the status symbol, times and a bar.
// Format: ▶  1:23  ━━━━━─────  4:56
func RenderProgressBar(positionMs, durationMs int64, width int, playing bool) string {
	status := playSymbol
	if !playing {
		status = pauseSymbol
	}

	posStr := render.Duration(positionMs)
	durStr := render.Duration(durationMs)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if durationMs > 0 {
		ratio = float64(positionMs) / float64(durationMs)
	}
	filled := max(min(int(float64(barWidth)*ratio), barWidth), 0)

	bar := filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}
