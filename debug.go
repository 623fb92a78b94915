package fractalview

import (
	"log/slog"
	"time"
)

// jobStats holds per-job timing. Only populated in full when the controller
// runs with Debug set.
type jobStats struct {
	evaluate time.Duration
	build    time.Duration
	total    time.Duration
	pixels   int
}

// logJob reports timing and throughput for a published job.
func logJob(log *slog.Logger, gen uint64, stats jobStats) {
	var mpps float64
	if secs := stats.total.Seconds(); secs > 0 {
		mpps = float64(stats.pixels) / secs / 1e6
	}
	log.Debug("job done",
		"generation", gen,
		"evaluate", stats.evaluate,
		"build", stats.build,
		"total", stats.total,
		"pixels", stats.pixels,
		"mpixels_per_sec", mpps,
	)
}
