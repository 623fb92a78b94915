package fractalview

import (
	"math"
	"testing"
)

const testDt = 1.0 / 60

func TestDefaultFlightLimits(t *testing.T) {
	l := DefaultFlightLimits()
	if l.TickHz == 0 || l.MaxTicksPerRedraw == 0 {
		t.Fatal("default tick settings must be non-zero")
	}
	if l.MinExtent >= l.MaxExtent {
		t.Errorf("MinExtent %v >= MaxExtent %v", l.MinExtent, l.MaxExtent)
	}
	if !approxEqual(l.Dt(), 1.0/60, epsilon) {
		t.Errorf("Dt = %v, want 1/60", l.Dt())
	}
	if (FlightLimits{}).Dt() != 0 {
		t.Error("Dt with TickHz 0 should be 0")
	}
}

func TestLoadFlightLimits(t *testing.T) {
	l, err := LoadFlightLimits([]byte(`{"tick_hz": 30, "max_speed": 2.5}`))
	if err != nil {
		t.Fatal(err)
	}
	if l.TickHz != 30 || l.MaxSpeed != 2.5 {
		t.Errorf("TickHz, MaxSpeed = %d, %v; want 30, 2.5", l.TickHz, l.MaxSpeed)
	}
	if l.BaseAccel != DefaultFlightLimits().BaseAccel {
		t.Errorf("BaseAccel = %v, want default", l.BaseAccel)
	}
}

func TestLoadFlightLimitsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `nope`},
		{"negative extent", `{"min_extent": -1}`},
		{"zero zoom base", `{"zoom_base": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFlightLimits([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStepMotionAccelerates(t *testing.T) {
	m := NewMotionState()
	l := DefaultFlightLimits()
	r := StepMotion(&m, Controls{Accelerate: true}, testDt, l)
	if !approxEqual(m.Speed, l.BaseAccel*testDt, epsilon) {
		t.Errorf("Speed = %v, want %v", m.Speed, l.BaseAccel*testDt)
	}
	if !r.ViewShouldUpdate {
		t.Error("ViewShouldUpdate = false with non-zero speed")
	}
	if m.Heading != DefaultHeading {
		t.Errorf("Heading = %v, want default %v", m.Heading, DefaultHeading)
	}
}

func TestStepMotionOpposingAccelCancels(t *testing.T) {
	m := NewMotionState()
	StepMotion(&m, Controls{Accelerate: true, Decelerate: true}, testDt, DefaultFlightLimits())
	if m.Accel != 0 || m.Speed != 0 {
		t.Errorf("Accel, Speed = %v, %v; want 0, 0", m.Accel, m.Speed)
	}
}

func TestStepMotionHeading(t *testing.T) {
	inv := 1 / math.Sqrt2
	tests := []struct {
		name string
		c    Controls
		want Vec2
	}{
		{"right", Controls{Right: true}, Vec2{1, 0}},
		{"up", Controls{Up: true}, Vec2{0, -1}},
		{"down left", Controls{Down: true, Left: true}, Vec2{-inv, inv}},
		{"opposing keeps previous", Controls{Left: true, Right: true}, DefaultHeading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMotionState()
			StepMotion(&m, tt.c, testDt, DefaultFlightLimits())
			if !approxEqual(m.Heading.X, tt.want.X, epsilon) || !approxEqual(m.Heading.Y, tt.want.Y, epsilon) {
				t.Errorf("Heading = %v, want %v", m.Heading, tt.want)
			}
		})
	}
}

func TestStepMotionSpeedClamp(t *testing.T) {
	l := DefaultFlightLimits()
	m := NewMotionState()
	m.Speed = l.MaxSpeed
	r := StepMotion(&m, Controls{Accelerate: true}, testDt, l)
	if m.Speed != l.MaxSpeed {
		t.Errorf("Speed = %v, want %v", m.Speed, l.MaxSpeed)
	}
	if !r.SpeedClamped || r.Warning != WarningSpeedClamped {
		t.Errorf("report = %+v, want speed clamped", r)
	}

	m.Speed = -l.MaxSpeed
	r = StepMotion(&m, Controls{Decelerate: true}, testDt, l)
	if m.Speed != -l.MaxSpeed || r.Warning != WarningSpeedClamped {
		t.Errorf("negative clamp: Speed = %v, report = %+v", m.Speed, r)
	}
}

func TestStepMotionPause(t *testing.T) {
	l := DefaultFlightLimits()
	m := NewMotionState()
	m.Speed = 1
	r := StepMotion(&m, Controls{PauseToggle: true, Accelerate: true, ZoomIn: true}, testDt, l)
	if !m.Paused || !r.PauseToggled {
		t.Fatalf("Paused = %v, PauseToggled = %v; want both true", m.Paused, r.PauseToggled)
	}
	if m.Speed != 1 || m.Accel != 0 || m.Zoom != 0 {
		t.Errorf("paused state changed: %+v", m)
	}
	if r.ViewShouldUpdate {
		t.Error("ViewShouldUpdate while paused")
	}

	StepMotion(&m, Controls{PauseToggle: true}, testDt, l)
	if m.Paused {
		t.Error("second pause edge did not resume")
	}
}

func TestStepMotionZoom(t *testing.T) {
	l := DefaultFlightLimits()
	m := NewMotionState()
	r := StepMotion(&m, Controls{ZoomIn: true}, testDt, l)
	if m.Zoom != l.ZoomRate {
		t.Errorf("Zoom = %v, want %v", m.Zoom, l.ZoomRate)
	}
	if !r.ViewShouldUpdate {
		t.Error("ViewShouldUpdate = false while zooming")
	}
	StepMotion(&m, Controls{ZoomOut: true}, testDt, l)
	if m.Zoom != -l.ZoomRate {
		t.Errorf("Zoom = %v, want %v", m.Zoom, -l.ZoomRate)
	}
}

func TestStepMotionNonFiniteDt(t *testing.T) {
	m := NewMotionState()
	StepMotion(&m, Controls{Accelerate: true}, math.NaN(), DefaultFlightLimits())
	if m.Speed != 0 {
		t.Errorf("Speed = %v, want 0 for NaN dt", m.Speed)
	}
}

func TestFlightWarningString(t *testing.T) {
	if WarningNone.String() != "" {
		t.Errorf("WarningNone.String() = %q, want empty", WarningNone.String())
	}
	if WarningNonFiniteReset.String() != "non-finite reset" {
		t.Errorf("String = %q", WarningNonFiniteReset.String())
	}
}
