package fractalview

import (
	"errors"
	"fmt"
)

// FractalAlgorithm computes an escape-time iteration count for one pixel.
// Implementations are pure and safe to call from many goroutines at once.
type FractalAlgorithm interface {
	Compute(p Point) (uint32, error)
}

// CoordinateError reports a pixel that cannot be mapped into the complex
// plane, usually because it lies outside the rectangle the algorithm was
// built for.
type CoordinateError struct {
	Point Point
	Rect  PixelRect
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("point (x: %d, y: %d) is outside pixel rect %dx%d at (%d, %d)",
		e.Point.X, e.Point.Y, e.Rect.Width, e.Rect.Height, e.Rect.X, e.Rect.Y)
}

// ErrZeroIterations is returned when an algorithm is configured with a
// maximum iteration count of zero.
var ErrZeroIterations = errors.New("max iterations must be greater than zero")

// PixelToComplex maps p inside rect linearly onto region. The top-left pixel
// maps to region.Min and the bottom-right pixel to region.Max.
func PixelToComplex(p Point, rect PixelRect, region Region) (complex128, error) {
	if !rect.Contains(p) {
		return 0, &CoordinateError{Point: p, Rect: rect}
	}
	dx := float64(max(rect.Width-1, 1))
	dy := float64(max(rect.Height-1, 1))
	re := real(region.Min) + float64(p.X-rect.X)/dx*region.Width()
	im := imag(region.Min) + float64(p.Y-rect.Y)/dy*region.Height()
	return complex(re, im), nil
}

// escapeRadiusSq is |z|^2 beyond which an orbit is considered divergent.
const escapeRadiusSq = 4.0

func escape(z, c complex128, maxIter uint32) uint32 {
	for i := uint32(0); i < maxIter; i++ {
		re, im := real(z), imag(z)
		if re*re+im*im > escapeRadiusSq {
			return i
		}
		z = complex(re*re-im*im+real(c), 2*re*im+imag(c))
	}
	return maxIter
}

// Mandelbrot iterates z -> z^2 + c from z = 0 with c taken from the pixel.
type Mandelbrot struct {
	rect    PixelRect
	region  Region
	maxIter uint32
}

// NewMandelbrot returns a Mandelbrot algorithm mapping rect onto region.
func NewMandelbrot(rect PixelRect, region Region, maxIter uint32) (*Mandelbrot, error) {
	if maxIter == 0 {
		return nil, ErrZeroIterations
	}
	return &Mandelbrot{rect: rect, region: region, maxIter: maxIter}, nil
}

// Compute returns the escape iteration for p, or the maximum if p is bounded.
func (m *Mandelbrot) Compute(p Point) (uint32, error) {
	c, err := PixelToComplex(p, m.rect, m.region)
	if err != nil {
		return 0, err
	}
	return escape(0, c, m.maxIter), nil
}

// DefaultJuliaC is the seed used when a request leaves JuliaC unset.
const DefaultJuliaC = complex(-0.7, 0.27)

// Julia iterates z -> z^2 + c from z taken from the pixel with a fixed seed c.
type Julia struct {
	rect    PixelRect
	region  Region
	maxIter uint32
	c       complex128
}

// NewJulia returns a Julia algorithm for seed c.
func NewJulia(rect PixelRect, region Region, maxIter uint32, c complex128) (*Julia, error) {
	if maxIter == 0 {
		return nil, ErrZeroIterations
	}
	return &Julia{rect: rect, region: region, maxIter: maxIter, c: c}, nil
}

// Compute returns the escape iteration for p.
func (j *Julia) Compute(p Point) (uint32, error) {
	z, err := PixelToComplex(p, j.rect, j.region)
	if err != nil {
		return 0, err
	}
	return escape(z, j.c, j.maxIter), nil
}
