package keymap

// Binding maps keys to an action, with a description for the help line.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback" or "queue"
}

// All contains every key binding of the terminal client.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionReload, []string{"r"}, "Reload queue", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "playback"},
	{ActionSeekBack, []string{"shift+left", "h"}, "Seek -5s", "playback"},
	{ActionSeekForward, []string{"shift+right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBackLong, []string{"H"}, "Seek -30s", "playback"},
	{ActionSeekForwardLong, []string{"L"}, "Seek +30s", "playback"},
	{ActionNextTrack, []string{"n"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p"}, "Previous track", "playback"},

	// Queue
	{ActionMoveUp, []string{"k", "up"}, "Move up", "queue"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "queue"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "queue"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "queue"},
	{ActionPageUp, []string{"pgup"}, "Page up", "queue"},
	{ActionPageDown, []string{"pgdown"}, "Page down", "queue"},
	{ActionJumpToActive, []string{"."}, "Jump to playing", "queue"},
	{ActionSelect, []string{"enter"}, "Play track", "queue"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
