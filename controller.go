package fractalview

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ControllerConfig tunes a Controller. The zero value is ready to use.
type ControllerConfig struct {
	// Evaluator computes iteration counts. Zero uses GOMAXPROCS workers.
	Evaluator Evaluator
	// Builder maps counts to RGB bytes.
	Builder BufferBuilder
	// Resolver turns a request into an algorithm and colour map. Nil uses
	// Resolve.
	Resolver Resolver
	// Logger receives job diagnostics. Nil discards them.
	Logger *slog.Logger
	// Debug logs per-job timing at debug level.
	Debug bool
}

// slot is the single-entry mailbox between SubmitRequest and the worker.
type slot struct {
	gen uint64
	req RenderRequest
}

// Controller owns one background render goroutine. Requests overwrite each
// other in a single-slot mailbox; the worker always takes the newest, and a
// job that has been superseded is abandoned at its next cancellation poll and
// never published.
//
// Call Shutdown when done with the controller, usually via defer.
type Controller struct {
	id      uuid.UUID
	sink    FrameSink
	resolve Resolver
	eval    Evaluator
	build   BufferBuilder
	log     *slog.Logger
	debug   bool

	generation atomic.Uint64
	completed  atomic.Uint64
	shutdown   atomic.Bool

	mu      sync.Mutex
	wake    *sync.Cond
	pending *slot

	stopOnce sync.Once
	done     chan struct{}
}

// NewController starts a render worker that publishes to sink.
func NewController(sink FrameSink, cfg ControllerConfig) *Controller {
	c := &Controller{
		id:      uuid.New(),
		sink:    sink,
		resolve: cfg.Resolver,
		eval:    cfg.Evaluator,
		build:   cfg.Builder,
		log:     cfg.Logger,
		debug:   cfg.Debug,
		done:    make(chan struct{}),
	}
	if c.resolve == nil {
		c.resolve = Resolve
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	c.log = c.log.With("component", "controller", "controller_id", c.id.String())
	c.wake = sync.NewCond(&c.mu)
	go c.run()
	return c
}

// ID identifies this controller in log output.
func (c *Controller) ID() uuid.UUID { return c.id }

// SubmitRequest queues req, replacing any request the worker has not picked
// up yet, and returns its generation. It never blocks on rendering.
func (c *Controller) SubmitRequest(req RenderRequest) uint64 {
	gen := c.generation.Add(1)
	c.mu.Lock()
	c.pending = &slot{gen: gen, req: req}
	c.mu.Unlock()
	c.wake.Signal()
	return gen
}

// CurrentGeneration returns the generation of the newest submission.
func (c *Controller) CurrentGeneration() uint64 {
	return c.generation.Load()
}

// LastCompletedGeneration returns the highest generation that has been
// published, as a frame or as an error. Superseded jobs never advance it.
func (c *Controller) LastCompletedGeneration() uint64 {
	return c.completed.Load()
}

// Shutdown stops the worker and waits for it to finish its current job.
// It is safe to call more than once. It must not be called from
// FrameSink.Present, which runs on the worker and would wait on itself; a
// sink that wants to stop the controller should call it on another goroutine.
func (c *Controller) Shutdown() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.shutdown.Store(true)
		c.mu.Unlock()
		c.wake.Broadcast()
	})
	<-c.done
}

func (c *Controller) run() {
	defer close(c.done)
	for {
		job, ok := c.next()
		if !ok {
			return
		}
		c.process(job)
	}
}

// next blocks until a request is waiting or shutdown was requested.
func (c *Controller) next() (slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if c.shutdown.Load() {
			return slot{}, false
		}
		if c.pending != nil {
			job := *c.pending
			c.pending = nil
			return job, true
		}
		c.wake.Wait()
	}
}

func (c *Controller) process(job slot) {
	stale := CancelFunc(func() bool {
		return c.shutdown.Load() || c.generation.Load() != job.gen
	})

	var stats jobStats
	start := time.Now()
	pixels, err := c.render(job.req, stale, &stats)
	stats.total = time.Since(start)

	if errors.Is(err, ErrCancelled) || stale.Cancelled() {
		c.log.Debug("job superseded", "generation", job.gen)
		return
	}
	if err != nil {
		var sizeErr *SizeError
		if errors.As(err, &sizeErr) {
			c.log.Error("render size mismatch", "generation", job.gen, "error", err)
		} else {
			c.log.Warn("render failed", "generation", job.gen, "error", err)
		}
		c.sink.Present(&ErrorEvent{Generation: job.gen, Message: err.Error(), Err: err})
		c.markCompleted(job.gen)
		return
	}

	if c.debug {
		stats.pixels = job.req.Rect.Size()
		logJob(c.log, job.gen, stats)
	}
	c.sink.Present(&FrameEvent{
		Generation: job.gen,
		Rect:       job.req.Rect,
		Pixels:     pixels,
		Duration:   stats.total,
	})
	c.markCompleted(job.gen)
}

func (c *Controller) render(req RenderRequest, token CancelToken, stats *jobStats) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	alg, cmap, err := c.resolve(req)
	if err != nil {
		return nil, err
	}

	t0 := time.Now()
	values, err := c.eval.Evaluate(req.Rect, alg, token)
	stats.evaluate = time.Since(t0)
	if err != nil {
		return nil, err
	}
	if token.Cancelled() {
		return nil, ErrCancelled
	}

	t0 = time.Now()
	pixels, err := c.build.Build(values, cmap, req.Rect, token)
	stats.build = time.Since(t0)
	return pixels, err
}

// markCompleted raises the watermark to gen unless it is already higher.
func (c *Controller) markCompleted(gen uint64) {
	for {
		cur := c.completed.Load()
		if cur >= gen || c.completed.CompareAndSwap(cur, gen) {
			return
		}
	}
}
