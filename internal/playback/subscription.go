package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged  <-chan StateChange
	QueueChanged  <-chan QueueChange
	StatusChanged <-chan StatusChange
	Synced        <-chan SyncEvent
	Replies       <-chan ReplyEvent
	Error         <-chan ErrorEvent
	Done          <-chan struct{}

	// Internal write channels
	stateCh  chan StateChange
	queueCh  chan QueueChange
	statusCh chan StatusChange
	syncCh   chan SyncEvent
	replyCh  chan ReplyEvent
	errorCh  chan ErrorEvent
	doneCh   chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:  make(chan StateChange, eventBufferSize),
		queueCh:  make(chan QueueChange, eventBufferSize),
		statusCh: make(chan StatusChange, eventBufferSize),
		syncCh:   make(chan SyncEvent, eventBufferSize),
		replyCh:  make(chan ReplyEvent, eventBufferSize),
		errorCh:  make(chan ErrorEvent, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.QueueChanged = s.queueCh
	s.StatusChanged = s.statusCh
	s.Synced = s.syncCh
	s.Replies = s.replyCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendQueue(e QueueChange) {
	select {
	case s.queueCh <- e:
	default:
	}
}

func (s *Subscription) sendStatus(e StatusChange) {
	select {
	case s.statusCh <- e:
	default:
	}
}

func (s *Subscription) sendSync(e SyncEvent) {
	select {
	case s.syncCh <- e:
	default:
	}
}

func (s *Subscription) sendReply(e ReplyEvent) {
	select {
	case s.replyCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
