package fractalview

import "fmt"

// FractalKind selects the escape-time formula.
type FractalKind uint8

const (
	KindMandelbrot FractalKind = iota
	KindJulia
	fractalKindCount
)

// String returns the display name of the kind.
func (k FractalKind) String() string {
	switch k {
	case KindMandelbrot:
		return "Mandelbrot"
	case KindJulia:
		return "Julia"
	default:
		return fmt.Sprintf("FractalKind(%d)", uint8(k))
	}
}

// Next cycles to the following kind, wrapping around.
func (k FractalKind) Next() FractalKind {
	return (k + 1) % fractalKindCount
}

// RenderRequest describes exactly one render job. It is a plain value:
// comparing two requests with == tells whether they would produce the same
// frame.
type RenderRequest struct {
	Rect          PixelRect
	Kind          FractalKind
	Region        Region
	MaxIterations uint32
	Colour        ColourScheme
	// JuliaC is the Julia seed. Zero selects DefaultJuliaC. Ignored for
	// Mandelbrot.
	JuliaC complex128
}

// DefaultMaxIterations is the iteration budget used by NewRenderRequest.
const DefaultMaxIterations = 256

// NewRenderRequest returns a request for kind over the default region.
func NewRenderRequest(rect PixelRect, kind FractalKind) RenderRequest {
	return RenderRequest{
		Rect:          rect,
		Kind:          kind,
		Region:        DefaultRegion(),
		MaxIterations: DefaultMaxIterations,
		Colour:        ColourFire,
	}
}

// Validate checks the parts of a request that no algorithm can recover from.
func (r RenderRequest) Validate() error {
	if r.Rect.Width < 2 || r.Rect.Height < 2 {
		return fmt.Errorf("invalid dimensions: %dx%d", r.Rect.Width, r.Rect.Height)
	}
	if r.MaxIterations == 0 {
		return ErrZeroIterations
	}
	if !r.Region.Valid() {
		return fmt.Errorf("invalid region: %v", r.Region)
	}
	return nil
}

// Resolver builds the algorithm and colour map for a request.
type Resolver func(RenderRequest) (FractalAlgorithm, ColourMap, error)

// Resolve is the default Resolver for the built-in kinds and schemes.
func Resolve(r RenderRequest) (FractalAlgorithm, ColourMap, error) {
	if err := r.Validate(); err != nil {
		return nil, nil, err
	}
	var (
		alg FractalAlgorithm
		err error
	)
	switch r.Kind {
	case KindMandelbrot:
		alg, err = NewMandelbrot(r.Rect, r.Region, r.MaxIterations)
	case KindJulia:
		c := r.JuliaC
		if c == 0 {
			c = DefaultJuliaC
		}
		alg, err = NewJulia(r.Rect, r.Region, r.MaxIterations, c)
	default:
		err = fmt.Errorf("unknown fractal kind %d", uint8(r.Kind))
	}
	if err != nil {
		return nil, nil, err
	}
	cmap, err := NewColourMap(r.Colour, r.MaxIterations)
	if err != nil {
		return nil, nil, err
	}
	return alg, cmap, nil
}
