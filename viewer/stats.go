package viewer

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

const renderWindow = 32

// renderTimes keeps the most recent frame render durations in milliseconds.
type renderTimes struct {
	ms   [renderWindow]float64
	n    int
	next int
}

func (r *renderTimes) add(d time.Duration) {
	r.ms[r.next] = millis(d)
	r.next = (r.next + 1) % renderWindow
	if r.n < renderWindow {
		r.n++
	}
}

// summary returns the mean and standard deviation of the recorded times.
// The deviation is zero with fewer than two samples.
func (r *renderTimes) summary() (mean, std float64) {
	if r.n == 0 {
		return 0, 0
	}
	xs := r.ms[:r.n]
	if r.n == 1 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
