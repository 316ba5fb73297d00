package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shershen08/playsync/internal/keymap"
	"github.com/shershen08/playsync/internal/playback"
	"github.com/shershen08/playsync/internal/ui/styles"
)

// Model is the root application model.
type Model struct {
	Service playback.Service

	sub     *playback.Subscription
	keys    *keymap.Resolver
	spinner spinner.Model
	now     func() time.Time

	Cursor   int
	ShowHelp bool
	ErrorMsg string
	Width    int
	Height   int
}

// New creates the application model around a running service.
func New(svc playback.Service) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.T().S().Muted
	return Model{
		Service: svc,
		sub:     svc.Subscribe(),
		keys:    keymap.NewResolver(keymap.All),
		spinner: sp,
		now:     time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchServiceEvents(), TickCmd(), m.spinner.Tick)
}
