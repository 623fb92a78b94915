package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/fractalview"
)

// Game is the Ebitengine game that drives a fractal flight. Update runs the
// flight simulation and decides what to render; rendering itself happens on
// the controller's worker goroutine and frames are picked up on the next
// Update.
type Game struct {
	cfg  RunConfig
	log  *slog.Logger
	ctrl *fractalview.Controller
	sink *fractalview.LatestFrameSink

	sim   *fractalview.FlightSimulator
	sched fractalview.Scheduler
	keys  keyboard
	glide *glide

	req      fractalview.RenderRequest
	screenW  int
	screenH  int
	lastTick time.Time

	frame    *ebiten.Image
	rgba     []byte
	last     *fractalview.FrameEvent
	lastGen  uint64
	lastErr  string
	renderMs float64
	times    renderTimes
}

// NewGame builds a game and starts its render controller. Call Close when
// done.
func NewGame(cfg RunConfig) (*Game, error) {
	cfg = cfg.withDefaults()
	rect, err := fractalview.NewPixelRect(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}

	req := fractalview.NewRenderRequest(rect, cfg.Kind)
	req.Colour = cfg.Colour
	req.MaxIterations = cfg.MaxIterations
	req.JuliaC = cfg.JuliaC
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}

	sink := fractalview.NewLatestFrameSink()
	g := &Game{
		cfg:     cfg,
		log:     cfg.Logger.With("component", "viewer"),
		sink:    sink,
		sim:     fractalview.NewFlightSimulator(cfg.Limits),
		req:     req,
		screenW: cfg.Width,
		screenH: cfg.Height,
	}
	g.ctrl = fractalview.NewController(sink, fractalview.ControllerConfig{
		Logger: cfg.Logger,
		Debug:  cfg.Debug,
	})
	g.sched.Update(g.req, false, 0, g.ctrl.SubmitRequest)
	return g, nil
}

// Close stops the render controller.
func (g *Game) Close() {
	g.ctrl.Shutdown()
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	now := time.Now()
	var elapsed time.Duration
	if !g.lastTick.IsZero() {
		elapsed = now.Sub(g.lastTick)
	}
	g.lastTick = now

	cmd := readCommands()
	if cmd.quit {
		return ebiten.Termination
	}
	g.keys.latch()

	changed := g.applyCommands(cmd)
	if g.resize() {
		changed = true
	}

	poll := g.keys.poll
	if g.cfg.Script != nil {
		poll = g.cfg.Script.Poll
	}
	res := g.sim.Advance(elapsed, poll, g.stepRegion)
	if res.StateChanged {
		changed = true
	}

	if g.glide != nil {
		region, done := g.glide.step(float32(elapsed.Seconds()))
		g.req.Region = region
		if done {
			g.glide = nil
		}
		changed = true
	}

	done := g.ctrl.LastCompletedGeneration()
	if changed {
		active := g.sim.IsActive() || g.glide != nil
		g.sched.Update(g.req, active, done, g.ctrl.SubmitRequest)
	} else {
		g.sched.Flush(done, g.ctrl.SubmitRequest)
	}

	g.collect()

	if s := g.cfg.Script; s != nil {
		for _, label := range s.TakeScreenshots() {
			g.saveScreenshot(label)
		}
		if g.cfg.ExitWhenScriptDone && s.Done() && !g.sched.HasPending() && g.idle() {
			return ebiten.Termination
		}
	}
	if cmd.screenshot {
		g.saveScreenshot("manual")
	}
	return nil
}

// stepRegion is the per-tick region update passed to the simulator.
func (g *Game) stepRegion(m fractalview.MotionState, dt float64, l fractalview.FlightLimits) fractalview.UpdateReport {
	if g.glide != nil && (m.Speed != 0 || m.Zoom != 0) {
		g.glide = nil
	}
	return fractalview.StepRegion(&g.req.Region, m, dt, l)
}

func (g *Game) applyCommands(cmd commands) bool {
	changed := false
	if cmd.switchKind {
		g.req.Kind = g.req.Kind.Next()
		g.req.Region = fractalview.DefaultRegion()
		g.glide = nil
		g.sim.ResetMotion()
		g.sched.Reset()
		g.log.Info("switched fractal", "kind", g.req.Kind)
		changed = true
	}
	if cmd.cycleColour {
		g.req.Colour = g.req.Colour.Next()
		changed = true
	}
	if cmd.home {
		g.sim.ResetMotion()
		g.glide = newGlide(g.req.Region, fractalview.DefaultRegion())
		changed = true
	}
	return changed
}

// resize follows the window size. The region keeps its extent; only the
// sampling density changes.
func (g *Game) resize() bool {
	if g.screenW == g.req.Rect.Width && g.screenH == g.req.Rect.Height {
		return false
	}
	rect, err := fractalview.NewPixelRect(g.screenW, g.screenH)
	if err != nil || rect.Width < 2 || rect.Height < 2 {
		return false
	}
	g.req.Rect = rect
	return true
}

// idle reports whether the newest submission has been published.
func (g *Game) idle() bool {
	return g.ctrl.LastCompletedGeneration() >= g.ctrl.CurrentGeneration()
}

// collect picks up the newest event from the controller, if any.
func (g *Game) collect() {
	ev, ok := g.sink.Take()
	if !ok {
		return
	}
	g.sched.ObserveCompletion(g.ctrl.LastCompletedGeneration())
	switch ev := ev.(type) {
	case *fractalview.FrameEvent:
		g.upload(ev)
		g.last = ev
		g.lastGen = ev.Generation
		g.lastErr = ""
		g.renderMs = millis(ev.Duration)
		g.times.add(ev.Duration)
	case *fractalview.ErrorEvent:
		g.lastErr = ev.Message
		g.log.Warn("render error", "generation", ev.Generation, "error", ev.Message)
	}
}

func (g *Game) upload(ev *fractalview.FrameEvent) {
	w, h := ev.Rect.Width, ev.Rect.Height
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w, h)
		g.rgba = make([]byte, w*h*4)
	}
	packRGBA(g.rgba, ev.Pixels)
	g.frame.WritePixels(g.rgba)
}

// packRGBA expands packed RGB into opaque RGBA. dst must hold len(src)/3*4
// bytes.
func packRGBA(dst, src []byte) {
	for i, j := 0, 0; i+2 < len(src); i, j = i+3, j+4 {
		dst[j] = src[i]
		dst[j+1] = src[i+1]
		dst[j+2] = src[i+2]
		dst[j+3] = 0xff
	}
}

func (g *Game) saveScreenshot(label string) {
	if g.last == nil {
		g.log.Warn("screenshot skipped, no frame yet", "label", label)
		return
	}
	path, err := fractalview.SaveFrame(g.cfg.ScreenshotDir, label, g.last)
	if err != nil {
		g.log.Error("screenshot failed", "label", label, "error", err)
		return
	}
	g.log.Info("screenshot saved", "path", path)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		op := &ebiten.DrawImageOptions{}
		sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
		fw, fh := g.frame.Bounds().Dx(), g.frame.Bounds().Dy()
		if sw != fw || sh != fh {
			op.GeoM.Scale(float64(sw)/float64(fw), float64(sh)/float64(fh))
			op.Filter = ebiten.FilterLinear
		}
		screen.DrawImage(g.frame, op)
	}
	if g.cfg.ShowHUD {
		drawHUD(screen, g.hud())
	}
}

func (g *Game) hud() hudState {
	mean, std := g.times.summary()
	return hudState{
		meanMs:   mean,
		stdMs:    std,
		kind:     g.req.Kind,
		colour:   g.req.Colour,
		region:   g.req.Region,
		status:   g.sim.Status(),
		gen:      g.lastGen,
		pending:  g.sched.HasPending(),
		renderMs: g.renderMs,
		lastErr:  g.lastErr,
		fps:      ebiten.ActualFPS(),
	}
}

// Layout implements ebiten.Game. The render size follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window and flies until it is closed or Escape is pressed.
func Run(cfg RunConfig) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
