package playback

import "github.com/shershen08/playsync/internal/wire"

// Service defines the playback controller contract.
type Service interface {
	// Transitions
	SelectItem(id string) error
	Play() error
	Pause() error
	Toggle() error
	Seek(positionMs int64) error

	// Queue selection; loads asynchronously
	LoadQueue(id wire.QueueID) error

	// Queries
	View() View

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
