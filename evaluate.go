package fractalview

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AlgorithmError wraps a per-pixel failure reported by a FractalAlgorithm.
type AlgorithmError struct {
	Point Point
	Err   error
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("algorithm error at (%d, %d): %v", e.Point.X, e.Point.Y, e.Err)
}

func (e *AlgorithmError) Unwrap() error { return e.Err }

// Evaluator computes one iteration count per pixel, one scanline per task.
// The zero value uses GOMAXPROCS workers and CancelCheckInterval.
type Evaluator struct {
	// Workers bounds how many rows are computed at once.
	Workers int
	// CheckInterval is the number of pixels between token polls within a row.
	CheckInterval int
}

// Evaluate runs alg over rect with the default Evaluator.
func Evaluate(rect PixelRect, alg FractalAlgorithm, token CancelToken) ([]uint32, error) {
	return Evaluator{}.Evaluate(rect, alg, token)
}

// Evaluate returns the iteration counts for rect in row-major order.
//
// Each row polls token when it starts and every CheckInterval pixels after
// that. The first row to see cancellation or an algorithm error ends the
// batch: no further rows are started, rows already running stop at their
// next poll, and that first error is returned. Rows are never interrupted
// mid-pixel.
func (e Evaluator) Evaluate(rect PixelRect, alg FractalAlgorithm, token CancelToken) ([]uint32, error) {
	if !rect.Valid() {
		return nil, fmt.Errorf("evaluate: invalid pixel rect %dx%d", rect.Width, rect.Height)
	}
	if token == nil {
		token = NeverCancel
	}
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	interval := e.CheckInterval
	if interval <= 0 {
		interval = CancelCheckInterval
	}

	out := make([]uint32, rect.Size())
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	for row := 0; row < rect.Height; row++ {
		if ctx.Err() != nil {
			break
		}
		dst := out[row*rect.Width : (row+1)*rect.Width]
		y := rect.Y + row
		g.Go(func() error {
			return evaluateRow(ctx, dst, rect.X, y, alg, token, interval)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// evaluateRow fills dst with the counts for scanline y starting at x0.
func evaluateRow(ctx context.Context, dst []uint32, x0, y int, alg FractalAlgorithm, token CancelToken, interval int) error {
	for i := range dst {
		if i%interval == 0 {
			if ctx.Err() != nil {
				// Another row already failed; its error is the one reported.
				return ctx.Err()
			}
			if token.Cancelled() {
				return ErrCancelled
			}
		}
		p := Point{X: x0 + i, Y: y}
		n, err := alg.Compute(p)
		if err != nil {
			return &AlgorithmError{Point: p, Err: err}
		}
		dst[i] = n
	}
	return nil
}

// EvaluateSerial computes rect on the calling goroutine without cancellation.
// It is the reference the parallel path must match.
func EvaluateSerial(rect PixelRect, alg FractalAlgorithm) ([]uint32, error) {
	if !rect.Valid() {
		return nil, fmt.Errorf("evaluate: invalid pixel rect %dx%d", rect.Width, rect.Height)
	}
	out := make([]uint32, 0, rect.Size())
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			p := Point{X: x, Y: y}
			n, err := alg.Compute(p)
			if err != nil {
				return nil, &AlgorithmError{Point: p, Err: err}
			}
			out = append(out, n)
		}
	}
	return out, nil
}
