package fractalview

import "fmt"

// SizeError reports a mismatch between a pixel rectangle and the data
// supplied for it. It always indicates a bug in the caller.
type SizeError struct {
	Expected int
	Actual   int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("pixel buffer size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// BufferBuilder maps iteration counts to packed RGB bytes. The zero value
// polls its token every CancelCheckInterval values.
type BufferBuilder struct {
	CheckInterval int
}

// BuildPixelBuffer runs the default BufferBuilder.
func BuildPixelBuffer(values []uint32, cmap ColourMap, rect PixelRect, token CancelToken) ([]byte, error) {
	return BufferBuilder{}.Build(values, cmap, rect, token)
}

// Build allocates a rect.BufferLen() byte buffer up front and fills it.
func (b BufferBuilder) Build(values []uint32, cmap ColourMap, rect PixelRect, token CancelToken) ([]byte, error) {
	if len(values) != rect.Size() {
		return nil, &SizeError{Expected: rect.BufferLen(), Actual: len(values) * 3}
	}
	buf := make([]byte, rect.BufferLen())
	if err := b.BuildInto(buf, values, cmap, rect, token); err != nil {
		return nil, err
	}
	return buf, nil
}

// BuildInto writes the colours for values into dst, which must be exactly
// rect.BufferLen() bytes long. On cancellation dst is left partially written.
func (b BufferBuilder) BuildInto(dst []byte, values []uint32, cmap ColourMap, rect PixelRect, token CancelToken) error {
	want := rect.BufferLen()
	if len(dst) != want {
		return &SizeError{Expected: want, Actual: len(dst)}
	}
	if len(values)*3 != want {
		return &SizeError{Expected: want, Actual: len(values) * 3}
	}
	if token == nil {
		token = NeverCancel
	}
	interval := b.CheckInterval
	if interval <= 0 {
		interval = CancelCheckInterval
	}

	for i, v := range values {
		if shouldStop(token, i, interval) {
			return ErrCancelled
		}
		c, err := cmap.Map(v)
		if err != nil {
			return fmt.Errorf("colour map: %w", err)
		}
		o := i * 3
		dst[o], dst[o+1], dst[o+2] = c.R, c.G, c.B
	}
	return nil
}
