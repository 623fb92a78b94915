package fractalview

import (
	"fmt"
	"math"
)

// Point is a pixel position. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// PixelRect is an axis-aligned rectangle of pixels. The origin is the
// top-left pixel; Width and Height count pixels and must both be at least 1
// for the rectangle to be usable.
type PixelRect struct {
	X, Y, Width, Height int
}

// NewPixelRect returns a width x height rectangle anchored at the origin.
func NewPixelRect(width, height int) (PixelRect, error) {
	r := PixelRect{Width: width, Height: height}
	if !r.Valid() {
		return PixelRect{}, fmt.Errorf("pixel rect size must be positive: %dx%d", width, height)
	}
	return r, nil
}

// Valid reports whether the rectangle covers at least one pixel.
func (r PixelRect) Valid() bool {
	return r.Width >= 1 && r.Height >= 1
}

// Contains reports whether p lies inside the rectangle. Edge pixels are inside.
func (r PixelRect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Size returns the number of pixels in the rectangle.
func (r PixelRect) Size() int {
	if !r.Valid() {
		return 0
	}
	return r.Width * r.Height
}

// BufferLen returns the number of RGB bytes needed to hold the rectangle.
func (r PixelRect) BufferLen() int {
	return r.Size() * 3
}

// Region is a rectangle in the complex plane. Min holds the smallest real and
// imaginary parts, Max the largest.
type Region struct {
	Min, Max complex128
}

// DefaultRegion is the view every fractal starts from and falls back to after
// a non-finite update.
func DefaultRegion() Region {
	return Region{Min: complex(-2.5, -1), Max: complex(1, 1)}
}

// RegionAround builds a region of the given extent centred on c.
func RegionAround(c complex128, width, height float64) Region {
	hw, hh := width/2, height/2
	return Region{
		Min: complex(real(c)-hw, imag(c)-hh),
		Max: complex(real(c)+hw, imag(c)+hh),
	}
}

// Width returns the real extent.
func (r Region) Width() float64 { return real(r.Max) - real(r.Min) }

// Height returns the imaginary extent.
func (r Region) Height() float64 { return imag(r.Max) - imag(r.Min) }

// Center returns the midpoint of the region.
func (r Region) Center() complex128 {
	return complex((real(r.Min)+real(r.Max))/2, (imag(r.Min)+imag(r.Max))/2)
}

// Valid reports whether the region is finite with positive extent.
func (r Region) Valid() bool {
	return r.Finite() && r.Width() > 0 && r.Height() > 0
}

// Finite reports whether every corner and both extents are finite.
func (r Region) Finite() bool {
	return finite(real(r.Min)) && finite(imag(r.Min)) &&
		finite(real(r.Max)) && finite(imag(r.Max)) &&
		finite(r.Width()) && finite(r.Height())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RGB is an 8-bit colour. There is no alpha; frames are opaque.
type RGB struct {
	R, G, B uint8
}

// Vec2 is a 2D vector used for headings.
type Vec2 struct {
	X, Y float64
}
