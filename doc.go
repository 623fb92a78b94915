// Package fractalview renders Mandelbrot and Julia sets interactively and
// keeps the view responsive while the user flies through them.
//
// Rendering runs on one background goroutine owned by a [Controller]. Every
// [Controller.SubmitRequest] gets a new generation number; a newer request
// supersedes older ones, which stop at their next cancellation poll and are
// never shown. Results arrive at a [FrameSink] on the worker goroutine.
// [LatestFrameSink] keeps only the newest event and signals a wake channel,
// which suits a frame-driven UI:
//
//	sink := fractalview.NewLatestFrameSink()
//	ctrl := fractalview.NewController(sink, fractalview.ControllerConfig{})
//	defer ctrl.Shutdown()
//
//	rect, _ := fractalview.NewPixelRect(800, 600)
//	ctrl.SubmitRequest(fractalview.NewRenderRequest(rect, fractalview.KindMandelbrot))
//	<-sink.Wake()
//	ev, _ := sink.Take()
//
// # Flight
//
// A [FlightSimulator] advances pan, zoom and speed on a fixed tick driven by
// wall-clock frame times. [StepRegion] applies one tick to a [Region] with
// clamping, and a [Scheduler] decides whether each tick's request goes to
// the controller now or waits for the job in flight:
//
//	var sched fractalview.Scheduler
//	req := fractalview.NewRenderRequest(rect, fractalview.KindMandelbrot)
//	sim := fractalview.NewFlightSimulator(fractalview.DefaultFlightLimits())
//	poll := func() fractalview.Controls { return fractalview.Controls{ZoomIn: true} }
//	step := func(m fractalview.MotionState, dt float64, l fractalview.FlightLimits) fractalview.UpdateReport {
//		return fractalview.StepRegion(&req.Region, m, dt, l)
//	}
//
//	frameTime := 50 * time.Millisecond
//	res := sim.Advance(frameTime, poll, step)
//	if res.StateChanged {
//		sched.Update(req, sim.IsActive(), ctrl.LastCompletedGeneration(), ctrl.SubmitRequest)
//	}
//
// The viewer package wires all of this to an Ebitengine window.
//
// # Export
//
// Frames can be written with [WritePNG], [WritePPM], [SaveFrame] and scaled
// down with [Thumbnail]. [LoadControlScript] replays recorded key input, which
// the viewer uses for scripted captures.
package fractalview
