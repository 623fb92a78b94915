package viewer

import (
	"log/slog"

	"github.com/phanxgames/fractalview"
)

// RunConfig configures the viewer window and the initial view. The zero value
// is usable: unset fields take the defaults listed on each field.
type RunConfig struct {
	// Title is the window title. Default "fractalview".
	Title string
	// Width and Height are the initial window size in pixels. Default 960x600.
	Width, Height int
	// ShowHUD prints flight status and render timing in the top-left corner.
	ShowHUD bool

	// Kind and Colour pick the starting fractal and colour scheme.
	Kind   fractalview.FractalKind
	Colour fractalview.ColourScheme
	// MaxIterations caps escape-time iteration. Default 256.
	MaxIterations uint32
	// JuliaC is the Julia seed. Zero uses fractalview.DefaultJuliaC.
	JuliaC complex128

	// Limits bounds the flight. Zero uses fractalview.DefaultFlightLimits.
	Limits fractalview.FlightLimits

	// ScreenshotDir is where F12 and script screenshots go. Default "screenshots".
	ScreenshotDir string
	// Script, when set, replaces keyboard flight controls.
	Script *fractalview.ControlScript
	// ExitWhenScriptDone closes the window once Script has run out.
	ExitWhenScriptDone bool

	// Logger receives viewer and controller diagnostics. Nil discards them.
	Logger *slog.Logger
	// Debug logs per-job render timing.
	Debug bool
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "fractalview"
	}
	if c.Width <= 0 {
		c.Width = 960
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = fractalview.DefaultMaxIterations
	}
	if c.JuliaC == 0 {
		c.JuliaC = fractalview.DefaultJuliaC
	}
	if c.Limits == (fractalview.FlightLimits{}) {
		c.Limits = fractalview.DefaultFlightLimits()
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
