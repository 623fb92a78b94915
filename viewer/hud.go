package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/fractalview"
)

// hudState is everything the overlay prints.
type hudState struct {
	kind     fractalview.FractalKind
	colour   fractalview.ColourScheme
	region   fractalview.Region
	status   fractalview.FlightStatus
	gen      uint64
	pending  bool
	renderMs float64
	meanMs   float64
	stdMs    float64
	lastErr  string
	fps      float64
}

func (h hudState) String() string {
	var b strings.Builder
	c := h.region.Center()
	fmt.Fprintf(&b, "%s / %s  FPS %.1f\n", h.kind, h.colour, h.fps)
	fmt.Fprintf(&b, "centre %.6g%+.6gi  width %.3g\n", real(c), imag(c), h.region.Width())
	state := "flying"
	if h.status.Paused {
		state = "paused"
	}
	fmt.Fprintf(&b, "%s  speed %.2f  zoom %+.1f  heading (%.2f, %.2f)\n",
		state, h.status.Speed, h.status.Zoom, h.status.Heading.X, h.status.Heading.Y)
	fmt.Fprintf(&b, "frame #%d  %.1f ms (avg %.1f ± %.1f)", h.gen, h.renderMs, h.meanMs, h.stdMs)
	if h.pending {
		b.WriteString("  (pending)")
	}
	if w := h.status.LastWarning; w != fractalview.WarningNone {
		fmt.Fprintf(&b, "\nwarning: %s", w)
	}
	if h.lastErr != "" {
		fmt.Fprintf(&b, "\nerror: %s", h.lastErr)
	}
	return b.String()
}

func drawHUD(screen *ebiten.Image, h hudState) {
	ebitenutil.DebugPrint(screen, h.String())
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
