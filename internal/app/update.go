package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/keymap"
	"github.com/shershen08/playsync/internal/playback"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		// Re-render only; relative times are derived from the view.
		return m, TickCmd()

	case spinner.TickMsg:
		if !m.Service.View().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ServiceQueueChangedMsg:
		m.ErrorMsg = ""
		m.followActive()
		return m, tea.Batch(m.WatchServiceEvents(), m.spinner.Tick)

	case ServiceStateChangedMsg:
		if msg.Cause == playback.CauseRestore {
			m.followActive()
		}
		return m, m.WatchServiceEvents()

	case ServiceErrorMsg:
		m.ErrorMsg = errmsg.Format(msg.Operation, msg.Err)
		return m, m.WatchServiceEvents()

	case ServiceStatusChangedMsg, ServiceSyncedMsg, ServiceReplyMsg:
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	if action == "" {
		return m, nil
	}
	if action == keymap.ActionQuit {
		return m, tea.Quit
	}
	if action == keymap.ActionHelp {
		m.ShowHelp = !m.ShowHelp
		return m, nil
	}
	m.ErrorMsg = ""
	if m.handleNavigation(action) {
		return m, nil
	}
	m.handlePlayback(action)
	return m, nil
}

// handleNavigation moves the cursor. Returns false for non-navigation actions.
func (m *Model) handleNavigation(action keymap.Action) bool {
	n := m.Service.View().Queue.Len()
	page := max(m.queueHeight()-4, 1)
	switch action {
	case keymap.ActionMoveUp:
		m.Cursor--
	case keymap.ActionMoveDown:
		m.Cursor++
	case keymap.ActionPageUp:
		m.Cursor -= page
	case keymap.ActionPageDown:
		m.Cursor += page
	case keymap.ActionJumpStart:
		m.Cursor = 0
	case keymap.ActionJumpEnd:
		m.Cursor = n - 1
	case keymap.ActionJumpToActive:
		m.followActive()
	default:
		return false
	}
	m.Cursor = min(max(m.Cursor, 0), max(n-1, 0))
	return true
}

func (m *Model) handlePlayback(action keymap.Action) {
	v := m.Service.View()
	switch action {
	case keymap.ActionSelect:
		items := v.Queue.Items()
		if m.Cursor >= len(items) {
			return
		}
		it := items[m.Cursor]
		if err := m.Service.SelectItem(it.ID); err != nil {
			m.ErrorMsg = errmsg.FormatWith(errmsg.OpPlaybackSelect, it.Title, err)
		}
	case keymap.ActionPlayPause:
		if err := m.Service.Toggle(); err != nil {
			m.ErrorMsg = errmsg.Format(errmsg.OpPlaybackToggle, err)
		}
	case keymap.ActionSeekForward:
		m.seekBy(v, keymap.SeekStepMs)
	case keymap.ActionSeekBack:
		m.seekBy(v, -keymap.SeekStepMs)
	case keymap.ActionSeekForwardLong:
		m.seekBy(v, keymap.SeekStepLongMs)
	case keymap.ActionSeekBackLong:
		m.seekBy(v, -keymap.SeekStepLongMs)
	case keymap.ActionNextTrack:
		m.skip(v, 1)
	case keymap.ActionPrevTrack:
		m.skip(v, -1)
	case keymap.ActionReload:
		if err := m.Service.LoadQueue(v.QueueID); err != nil {
			m.ErrorMsg = errmsg.FormatWith(errmsg.OpQueueLoad, v.QueueID.String(), err)
		}
	}
}

func (m *Model) seekBy(v playback.View, deltaMs int64) {
	if !v.State.HasSelection() {
		return
	}
	if err := m.Service.Seek(max(v.State.PositionMs+deltaMs, 0)); err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpPlaybackSeek, err)
	}
}

// skip selects the item offset positions away from the active one and moves
// the cursor onto it. Does nothing past either end of the queue.
func (m *Model) skip(v playback.View, offset int) {
	idx := v.Queue.IndexOf(v.State.SelectedItemID)
	if idx < 0 {
		return
	}
	it, ok := v.Queue.At(idx + offset)
	if !ok {
		return
	}
	if err := m.Service.SelectItem(it.ID); err != nil {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpPlaybackSelect, it.Title, err)
		return
	}
	m.Cursor = idx + offset
}

// followActive moves the cursor onto the active item, or back into range
// when nothing is selected.
func (m *Model) followActive() {
	v := m.Service.View()
	if idx := v.Queue.IndexOf(v.State.SelectedItemID); idx >= 0 {
		m.Cursor = idx
		return
	}
	m.Cursor = min(max(m.Cursor, 0), max(v.Queue.Len()-1, 0))
}
