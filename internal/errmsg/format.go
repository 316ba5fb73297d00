// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Queue operations
	OpQueueLoad Op = "load queue"

	// Sync operations
	OpSyncPush    Op = "sync playback"
	OpSyncPull    Op = "fetch saved playback"
	OpSyncChannel Op = "keep sync connection"

	// Playback operations
	OpPlaybackSelect Op = "select track"
	OpPlaybackToggle Op = "toggle playback"
	OpPlaybackSeek   Op = "seek"

	// Server operations
	OpStateSave Op = "save playback state"
	OpStateLoad Op = "load playback state"
	OpServe     Op = "serve"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
