package fractalview

import "errors"

// CancelCheckInterval is how many pixels (or values) a loop processes between
// polls of its CancelToken. At typical escape-time costs this lands a
// cancellation within about a millisecond on a wide row.
const CancelCheckInterval = 1024

// ErrCancelled is returned when a CancelToken reported cancellation. It is
// expected control flow: callers discard the partial result and never show it
// to the user.
var ErrCancelled = errors.New("operation cancelled")

// CancelToken is polled by long-running loops to decide whether to stop.
// Cancelled must be safe for concurrent use and must not allocate.
type CancelToken interface {
	Cancelled() bool
}

// CancelFunc adapts a plain predicate to a CancelToken.
type CancelFunc func() bool

// Cancelled calls f.
func (f CancelFunc) Cancelled() bool { return f() }

type neverCancel struct{}

func (neverCancel) Cancelled() bool { return false }

// NeverCancel is a token that never reports cancellation.
var NeverCancel CancelToken = neverCancel{}

// shouldStop polls token on index boundaries that are multiples of interval.
func shouldStop(token CancelToken, i, interval int) bool {
	return i%interval == 0 && token.Cancelled()
}
