package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shershen08/playsync/internal/ui/styles"
)

var (
	barStyle    = styles.Panel()
	titleStyle  = lipgloss.NewStyle().Foreground(styles.T().FgBase).Bold(true)
	artistStyle = lipgloss.NewStyle().Foreground(styles.T().FgMuted)
	metaStyle   = lipgloss.NewStyle().Foreground(styles.T().FgSubtle)
	filledStyle = lipgloss.NewStyle().Foreground(styles.T().Primary)
	emptyStyle  = lipgloss.NewStyle().Foreground(styles.T().FgSubtle)
)
