package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/playback"
	"github.com/shershen08/playsync/internal/session"
)

func newTestModel(t *testing.T) (Model, *playback.Mock) {
	t.Helper()
	mock := playback.NewMock("user_123", catalog.NewQueue("42", []catalog.Item{
		{ID: "track_1", Title: "Bohemian Rhapsody", Artist: "Queen", DurationMs: 354000},
		{ID: "track_2", Title: "Imagine", Artist: "John Lennon", DurationMs: 183000},
		{ID: "track_3", Title: "Stairway to Heaven", Artist: "Led Zeppelin", DurationMs: 482000},
	}))
	mock.SetView(func(v *playback.View) { v.Status = channel.Connected })
	t.Cleanup(func() { _ = mock.Close() })
	return New(mock), mock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok, "Update should return Model")
	return result, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.Width)
	assert.Equal(t, 40, m.Height)
}

func TestUpdate_SelectUnderCursor(t *testing.T) {
	m, mock := newTestModel(t)

	m, _ = update(t, m, key("j"))
	m, _ = update(t, m, key("enter"))

	assert.Equal(t, 1, m.Cursor)
	assert.Equal(t, []string{"select"}, mock.Calls())
	assert.Equal(t, session.State{SelectedItemID: "track_2", Playing: true}, mock.View().State)
}

func TestUpdate_SpaceToggles(t *testing.T) {
	m, mock := newTestModel(t)
	require.NoError(t, mock.SelectItem("track_1"))

	m, _ = update(t, m, key(" "))
	assert.False(t, mock.View().State.Playing)

	_, _ = update(t, m, key(" "))
	assert.True(t, mock.View().State.Playing)
}

func TestUpdate_ToggleWithoutSelectionShowsError(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, key(" "))

	assert.Equal(t, "Failed to toggle playback: no active item", m.ErrorMsg)
	assert.Contains(t, m.View(), "Failed to toggle playback")
}

func TestUpdate_Seek(t *testing.T) {
	m, mock := newTestModel(t)
	require.NoError(t, mock.SelectItem("track_1"))

	m, _ = update(t, m, key("L"))
	_, _ = update(t, m, key("h"))

	assert.Equal(t, []int64{30000, 25000}, mock.Seeks())
}

func TestUpdate_SeekBackClampsAtZero(t *testing.T) {
	m, mock := newTestModel(t)
	require.NoError(t, mock.SelectItem("track_1"))

	_, _ = update(t, m, key("H"))

	assert.Equal(t, []int64{0}, mock.Seeks())
}

func TestUpdate_NextAndPreviousTrack(t *testing.T) {
	m, mock := newTestModel(t)
	require.NoError(t, mock.SelectItem("track_2"))

	m, _ = update(t, m, key("n"))
	assert.Equal(t, "track_3", mock.View().State.SelectedItemID)
	assert.Equal(t, 2, m.Cursor)

	m, _ = update(t, m, key("n"))
	assert.Equal(t, "track_3", mock.View().State.SelectedItemID, "no wrap past the end")

	m, _ = update(t, m, key("p"))
	assert.Equal(t, "track_2", mock.View().State.SelectedItemID)
	assert.Equal(t, 1, m.Cursor)
}

func TestUpdate_CursorStaysInRange(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, key("k"))
	assert.Equal(t, 0, m.Cursor)

	m, _ = update(t, m, key("G"))
	assert.Equal(t, 2, m.Cursor)

	m, _ = update(t, m, key("down"))
	assert.Equal(t, 2, m.Cursor)
}

func TestUpdate_RestoreMovesCursor(t *testing.T) {
	m, mock := newTestModel(t)
	require.NoError(t, mock.SelectItem("track_3"))

	m, cmd := update(t, m, ServiceStateChangedMsg{Cause: playback.CauseRestore})

	assert.Equal(t, 2, m.Cursor)
	assert.NotNil(t, cmd, "keeps watching service events")
}

func TestUpdate_ServiceError(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, ServiceErrorMsg{Operation: errmsg.OpSyncPush, Err: channel.ErrNotConnected})

	assert.Equal(t, "Failed to sync playback: channel not connected", m.ErrorMsg)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, key("j"))
	assert.Empty(t, m.ErrorMsg, "next action clears the error")
}

func TestUpdate_SelectFailure(t *testing.T) {
	m, mock := newTestModel(t)
	mock.SetError(errors.New("boom"))

	m, _ = update(t, m, key("enter"))

	assert.Equal(t, "Failed to select track 'Bohemian Rhapsody': boom", m.ErrorMsg)
}

func TestUpdate_Reload(t *testing.T) {
	m, mock := newTestModel(t)

	_, _ = update(t, m, key("r"))

	assert.Len(t, mock.Loads(), 1)
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, key("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWatchServiceEvents(t *testing.T) {
	m, mock := newTestModel(t)
	cmd := m.WatchServiceEvents()
	require.NotNil(t, cmd)

	require.NoError(t, mock.SelectItem("track_1"))

	msg := cmd()
	ev, ok := msg.(ServiceStateChangedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, playback.CauseSelect, ev.Cause)

	require.NoError(t, mock.Close())
	// drain remaining buffered events until the close arrives
	for range 10 {
		if _, ok := m.WatchServiceEvents()().(ServiceClosedMsg); ok {
			return
		}
	}
	t.Fatal("ServiceClosedMsg never delivered")
}

func TestView(t *testing.T) {
	m, mock := newTestModel(t)
	require.NoError(t, mock.SelectItem("track_2"))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	out := m.View()

	assert.Contains(t, out, "3 songs")
	assert.Contains(t, out, "Connected")
	assert.Contains(t, out, "Imagine")
	assert.Contains(t, out, "3:03")
	assert.Equal(t, 20, len(strings.Split(out, "\n")))
}

func TestView_Loading(t *testing.T) {
	m, mock := newTestModel(t)
	mock.SetView(func(v *playback.View) {
		v.Queue = catalog.Queue{}
		v.QueueLoaded = false
		v.Loading = true
	})

	assert.Contains(t, m.View(), "Loading tracks...")
}
