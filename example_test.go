package fractalview_test

import (
	"fmt"
	"time"

	"github.com/phanxgames/fractalview"
)

func ExampleController() {
	sink := fractalview.NewLatestFrameSink()
	ctrl := fractalview.NewController(sink, fractalview.ControllerConfig{})
	defer ctrl.Shutdown()

	rect, _ := fractalview.NewPixelRect(8, 6)
	ctrl.SubmitRequest(fractalview.NewRenderRequest(rect, fractalview.KindMandelbrot))
	<-sink.Wake()
	ev, _ := sink.Take()
	fmt.Println(ev.EventGeneration())
	// Output: 1
}

func ExampleFlightSimulator() {
	sink := fractalview.NewLatestFrameSink()
	ctrl := fractalview.NewController(sink, fractalview.ControllerConfig{})
	defer ctrl.Shutdown()
	rect, _ := fractalview.NewPixelRect(8, 6)

	var sched fractalview.Scheduler
	req := fractalview.NewRenderRequest(rect, fractalview.KindMandelbrot)
	sim := fractalview.NewFlightSimulator(fractalview.DefaultFlightLimits())
	poll := func() fractalview.Controls { return fractalview.Controls{ZoomIn: true} }
	step := func(m fractalview.MotionState, dt float64, l fractalview.FlightLimits) fractalview.UpdateReport {
		return fractalview.StepRegion(&req.Region, m, dt, l)
	}

	frameTime := 50 * time.Millisecond
	res := sim.Advance(frameTime, poll, step)
	if res.StateChanged {
		sched.Update(req, sim.IsActive(), ctrl.LastCompletedGeneration(), ctrl.SubmitRequest)
	}
	fmt.Println(res.StateChanged, req.Region.Width() < fractalview.DefaultRegion().Width())
	// Output: true true
}
