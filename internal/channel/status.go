package channel

// Status is the lifecycle state of a channel.
//
//	┌────────────┐   open    ┌───────────┐
//	│ Connecting │ ─────────▶│ Connected │
//	└────────────┘           └───────────┘
//	      │                        │
//	      │ dial error      close, │ read/write error
//	      ▼                        ▼
//	┌──────────────────────────────────┐
//	│           Disconnected           │
//	└──────────────────────────────────┘
//
// Disconnected is terminal: a Manager never reconnects.
type Status int

const (
	Connecting Status = iota
	Connected
	Disconnected
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
