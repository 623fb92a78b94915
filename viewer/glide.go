package viewer

import (
	"math"

	"github.com/phanxgames/fractalview"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const glideSeconds = 1.2

// glide animates the view back to a target region. The centre moves linearly
// in the plane and the extents move in log space, so a glide out from a deep
// zoom spends its time evenly across scales.
//
// Only the eased progress goes through the tween. Positions stay in float64
// so a glide that starts deep in a zoom begins exactly where the view is.
type glide struct {
	progress *gween.Tween
	from, to fractalview.Region
}

func newGlide(from, to fractalview.Region) *glide {
	return &glide{
		progress: gween.New(0, 1, glideSeconds, ease.InOutCubic),
		from:     from,
		to:       to,
	}
}

// step advances the glide by dt seconds and returns the region to show. On
// the last step it returns the target exactly.
func (g *glide) step(dt float32) (fractalview.Region, bool) {
	p, done := g.progress.Update(dt)
	if done {
		return g.to, true
	}
	t := float64(p)
	fc, tc := g.from.Center(), g.to.Center()
	re := lerp(real(fc), real(tc), t)
	im := lerp(imag(fc), imag(tc), t)
	w := math.Exp2(lerp(math.Log2(g.from.Width()), math.Log2(g.to.Width()), t))
	h := math.Exp2(lerp(math.Log2(g.from.Height()), math.Log2(g.to.Height()), t))
	return fractalview.RegionAround(complex(re, im), w, h), false
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
