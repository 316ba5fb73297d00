package playback

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a closed controller.
var ErrClosed = errors.New("playback controller closed")

// TransportError wraps a failed fetch, pull or channel operation. Transport
// errors are reported, never fatal: the local session stays consistent.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
