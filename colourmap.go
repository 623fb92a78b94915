package fractalview

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// ColourMap turns an iteration count into a colour. Implementations are pure.
type ColourMap interface {
	Map(iterations uint32) (RGB, error)
}

// MapError reports an iteration count the colour map cannot represent.
type MapError struct {
	Iterations    uint32
	MaxIterations uint32
}

func (e *MapError) Error() string {
	return fmt.Sprintf("iterations %d exceeds maximum %d", e.Iterations, e.MaxIterations)
}

// ColourScheme selects one of the built-in colour maps.
type ColourScheme uint8

const (
	ColourFire      ColourScheme = iota // black through red and orange to white
	ColourBlueWhite                     // polynomial blue-to-white gradient
	ColourEased                         // violet ramp shaped by an easing curve
	colourSchemeCount
)

// String returns the display name of the scheme.
func (s ColourScheme) String() string {
	switch s {
	case ColourFire:
		return "Fire"
	case ColourBlueWhite:
		return "Blue/White"
	case ColourEased:
		return "Eased"
	default:
		return fmt.Sprintf("ColourScheme(%d)", uint8(s))
	}
}

// Next cycles to the following scheme, wrapping around.
func (s ColourScheme) Next() ColourScheme {
	return (s + 1) % colourSchemeCount
}

// NewColourMap returns the map for scheme s scaled to maxIter.
func NewColourMap(s ColourScheme, maxIter uint32) (ColourMap, error) {
	switch s {
	case ColourFire:
		return Fire{MaxIterations: maxIter}, nil
	case ColourBlueWhite:
		return BlueWhite{MaxIterations: maxIter}, nil
	case ColourEased:
		return Eased{MaxIterations: maxIter, Curve: ease.OutCubic}, nil
	default:
		return nil, fmt.Errorf("unknown colour scheme %d", uint8(s))
	}
}

// fraction validates n against max and returns n/max. Points that never
// escaped (n == max) report inside == true and are painted black.
func fraction(n, maxIter uint32) (t float64, inside bool, err error) {
	if n > maxIter {
		return 0, false, &MapError{Iterations: n, MaxIterations: maxIter}
	}
	if n == maxIter {
		return 0, true, nil
	}
	return float64(n) / float64(maxIter), false, nil
}

// BlueWhite is a smooth polynomial gradient from deep blue to white.
type BlueWhite struct {
	MaxIterations uint32
}

// Map implements ColourMap.
func (m BlueWhite) Map(n uint32) (RGB, error) {
	t, inside, err := fraction(n, m.MaxIterations)
	if err != nil || inside {
		return RGB{}, err
	}
	u := 1 - t
	return RGB{
		R: uint8(9 * u * t * t * t * 255),
		G: uint8(15 * u * u * t * t * 255),
		B: uint8(8.5 * u * u * u * t * 255),
	}, nil
}

// Fire ramps black -> red -> orange -> yellow -> white in four equal bands.
type Fire struct {
	MaxIterations uint32
}

// Map implements ColourMap.
func (m Fire) Map(n uint32) (RGB, error) {
	t, inside, err := fraction(n, m.MaxIterations)
	if err != nil || inside {
		return RGB{}, err
	}
	switch {
	case t < 0.25:
		return RGB{R: uint8(t / 0.25 * 255)}, nil
	case t < 0.5:
		return RGB{R: 255, G: uint8((t - 0.25) / 0.25 * 165)}, nil
	case t < 0.75:
		return RGB{R: 255, G: uint8(165 + (t-0.5)/0.25*90)}, nil
	default:
		return RGB{R: 255, G: 255, B: uint8((t - 0.75) / 0.25 * 255)}, nil
	}
}

// Eased runs a violet-to-gold ramp through an easing curve so that low
// iteration counts, where most of the detail lives, get more of the range.
type Eased struct {
	MaxIterations uint32
	Curve         ease.TweenFunc
}

var (
	easedFrom = RGB{R: 20, G: 6, B: 60}
	easedTo   = RGB{R: 255, G: 214, B: 90}
)

// Map implements ColourMap.
func (m Eased) Map(n uint32) (RGB, error) {
	t, inside, err := fraction(n, m.MaxIterations)
	if err != nil || inside {
		return RGB{}, err
	}
	curve := m.Curve
	if curve == nil {
		curve = ease.Linear
	}
	// TweenFunc(t, begin, change, duration) with duration 1 evaluates the
	// curve at t over [begin, begin+change].
	k := float64(curve(float32(t), 0, 1, 1))
	k = min(max(k, 0), 1)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*k)
	}
	return RGB{
		R: lerp(easedFrom.R, easedTo.R),
		G: lerp(easedFrom.G, easedTo.G),
		B: lerp(easedFrom.B, easedTo.B),
	}, nil
}
