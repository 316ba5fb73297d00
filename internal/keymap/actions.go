// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionReload Action = "reload" // reload the queue from the catalog

	// Playback actions
	ActionPlayPause       Action = "play_pause"
	ActionSeekForward     Action = "seek_forward"
	ActionSeekBack        Action = "seek_back"
	ActionSeekForwardLong Action = "seek_forward_long"
	ActionSeekBackLong    Action = "seek_back_long"
	ActionNextTrack       Action = "next_track"
	ActionPrevTrack       Action = "prev_track"

	// Navigation actions
	ActionMoveUp       Action = "move_up"
	ActionMoveDown     Action = "move_down"
	ActionJumpStart    Action = "jump_start"
	ActionJumpEnd      Action = "jump_end"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionJumpToActive Action = "jump_to_active"

	// Selection
	ActionSelect Action = "select" // enter - play the item under the cursor
)

// Seek steps in milliseconds.
const (
	SeekStepMs     = 5000
	SeekStepLongMs = 30000
)
