//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpQueueLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpQueueLoad,
			err:      errors.New("not found"),
			expected: "Failed to load queue: not found",
		},
		{
			name:     "sync push operation",
			op:       OpSyncPush,
			err:      errors.New("not connected"),
			expected: "Failed to sync playback: not connected",
		},
		{
			name:     "pull operation",
			op:       OpSyncPull,
			err:      errors.New("connection refused"),
			expected: "Failed to fetch saved playback: connection refused",
		},
		{
			name:     "server save operation",
			op:       OpStateSave,
			err:      errors.New("database is locked"),
			expected: "Failed to save playback state: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackSelect,
			context:  "track_1",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaybackSelect,
			context:  "track_1",
			err:      errors.New("unknown item"),
			expected: "Failed to select track 'track_1': unknown item",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaybackSelect,
			context:  "",
			err:      errors.New("unknown item"),
			expected: "Failed to select track: unknown item",
		},
		{
			name:     "queue load with id context",
			op:       OpQueueLoad,
			context:  "42",
			err:      errors.New("not found"),
			expected: "Failed to load queue '42': not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpQueueLoad,
		OpSyncPush, OpSyncPull, OpSyncChannel,
		OpPlaybackSelect, OpPlaybackToggle, OpPlaybackSeek,
		OpStateSave, OpStateLoad, OpServe,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
