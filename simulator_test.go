package fractalview

import (
	"math"
	"testing"
	"time"
)

func testLimits() FlightLimits {
	l := DefaultFlightLimits()
	l.TickHz = 60
	l.MaxTicksPerRedraw = 10
	return l
}

// ticks returns a duration covering n ticks, padded so float rounding cannot
// drop the last one.
func ticks(n, hz int) time.Duration {
	return time.Duration(float64(n)/float64(hz)*float64(time.Second)) + time.Microsecond
}

func noControls() Controls { return Controls{} }

func noUpdate(MotionState, float64, FlightLimits) UpdateReport { return UpdateReport{} }

func TestAdvanceRunsWholeTicks(t *testing.T) {
	for _, k := range []int{1, 3, 7} {
		sim := NewFlightSimulator(testLimits())
		polls, updates := 0, 0
		res := sim.Advance(ticks(k, 60),
			func() Controls { polls++; return Controls{} },
			func(MotionState, float64, FlightLimits) UpdateReport { updates++; return UpdateReport{} },
		)
		if res.TicksRun != uint32(k) || polls != k || updates != k {
			t.Errorf("k=%d: TicksRun=%d polls=%d updates=%d", k, res.TicksRun, polls, updates)
		}
	}
}

func TestAdvanceCarriesFraction(t *testing.T) {
	l := testLimits()
	l.TickHz = 2
	sim := NewFlightSimulator(l)

	first := sim.Advance(250*time.Millisecond, noControls, noUpdate)
	second := sim.Advance(250*time.Millisecond, noControls, noUpdate)
	if first.TicksRun != 0 || second.TicksRun != 1 {
		t.Errorf("ticks = %d, %d; want 0, 1", first.TicksRun, second.TicksRun)
	}
}

func TestAdvanceZeroElapsed(t *testing.T) {
	sim := NewFlightSimulator(testLimits())
	res := sim.Advance(0, func() Controls {
		t.Fatal("poll called with zero elapsed")
		return Controls{}
	}, noUpdate)
	if res.TicksRun != 0 || res.StateChanged {
		t.Errorf("result = %+v, want no ticks and no change", res)
	}
}

func TestAdvanceCapsAndDropsExcess(t *testing.T) {
	sim := NewFlightSimulator(testLimits())
	res := sim.Advance(time.Second, noControls, noUpdate)
	if res.TicksRun != 10 {
		t.Errorf("TicksRun = %d, want 10", res.TicksRun)
	}
	after := sim.Advance(0, noControls, noUpdate)
	if after.TicksRun != 0 {
		t.Errorf("TicksRun after drop = %d, want 0", after.TicksRun)
	}
}

func TestAdvanceZeroTickRate(t *testing.T) {
	l := testLimits()
	l.TickHz = 0
	sim := NewFlightSimulator(l)
	if res := sim.Advance(time.Second, noControls, noUpdate); res.TicksRun != 0 {
		t.Errorf("TicksRun = %d, want 0", res.TicksRun)
	}
}

func TestAdvancePausedReportsNoChange(t *testing.T) {
	sim := NewFlightSimulator(testLimits())
	sim.Advance(ticks(1, 60), func() Controls { return Controls{PauseToggle: true} }, noUpdate)

	res := sim.Advance(ticks(1, 60), func() Controls { return Controls{Accelerate: true} }, noUpdate)
	if res.TicksRun != 1 {
		t.Fatalf("TicksRun = %d, want 1", res.TicksRun)
	}
	if res.StateChanged {
		t.Error("StateChanged while paused")
	}
	if !res.Status.Paused {
		t.Error("Status.Paused = false")
	}
}

func TestAdvanceStatusReflectsWarnings(t *testing.T) {
	sim := NewFlightSimulator(testLimits())
	res := sim.Advance(ticks(1, 60), func() Controls { return Controls{Accelerate: true} },
		func(m MotionState, _ float64, _ FlightLimits) UpdateReport {
			if m.Speed > 0 {
				return UpdateReport{Clamped: true, Warning: WarningExtentClamped}
			}
			return UpdateReport{}
		})
	if res.Status != sim.Status() {
		t.Errorf("result status %+v differs from Status() %+v", res.Status, sim.Status())
	}
	if res.Status.LastWarning != WarningExtentClamped {
		t.Errorf("LastWarning = %v, want extent clamped", res.Status.LastWarning)
	}
	if !res.StateChanged {
		t.Error("StateChanged = false")
	}
}

func TestAdvanceNonFiniteRegionResets(t *testing.T) {
	sim := NewFlightSimulator(testLimits())
	region := Region{Min: complex(math.NaN(), 0), Max: complex(1, 1)}
	res := sim.Advance(ticks(1, 60), func() Controls { return Controls{Accelerate: true} },
		func(m MotionState, dt float64, l FlightLimits) UpdateReport {
			return StepRegion(&region, m, dt, l)
		})
	if region != DefaultRegion() {
		t.Errorf("region = %v, want default", region)
	}
	if res.Status.LastWarning != WarningNonFiniteReset {
		t.Errorf("LastWarning = %v, want non-finite reset", res.Status.LastWarning)
	}
}

func TestResetMotion(t *testing.T) {
	sim := NewFlightSimulator(testLimits())
	sim.Advance(ticks(1, 60), func() Controls { return Controls{Accelerate: true} },
		func(MotionState, float64, FlightLimits) UpdateReport {
			return UpdateReport{Clamped: true, Warning: WarningCenterClamped}
		})
	sim.ResetMotion()

	st := sim.Status()
	if st.Paused || st.Speed != 0 || st.Heading != DefaultHeading || st.LastWarning != WarningNone {
		t.Errorf("status after reset = %+v", st)
	}
	if sim.IsActive() {
		t.Error("IsActive after reset")
	}
}

func TestIsActive(t *testing.T) {
	sim := NewFlightSimulator(testLimits())
	if sim.IsActive() {
		t.Error("stationary simulator is active")
	}
	sim.motion.Speed = 1
	if !sim.IsActive() {
		t.Error("moving simulator is not active")
	}
	sim.motion.Paused = true
	if sim.IsActive() {
		t.Error("paused simulator is active")
	}
	sim.motion = NewMotionState()
	sim.motion.Zoom = 1
	if !sim.IsActive() {
		t.Error("zooming simulator is not active")
	}
}
