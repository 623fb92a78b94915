package fractalview

import (
	"encoding/json"
	"fmt"
	"math"
)

// Controls is a snapshot of the flight keys for one tick. PauseToggle is an
// edge: it is true only on the tick the key went down.
type Controls struct {
	Up, Left, Down, Right bool
	Accelerate            bool
	Decelerate            bool
	ZoomIn, ZoomOut       bool
	PauseToggle           bool
}

// DefaultHeading points up the screen.
var DefaultHeading = Vec2{X: 0, Y: -1}

// MotionState is the flight's kinematic state. Speed and acceleration are in
// region extents per second, so panning feels the same at every zoom level.
// Zoom is in doublings (of ZoomBase) per second; positive zooms in.
type MotionState struct {
	Paused  bool
	Heading Vec2
	Speed   float64
	Accel   float64
	Zoom    float64
}

// NewMotionState returns a stationary, unpaused state heading up.
func NewMotionState() MotionState {
	return MotionState{Heading: DefaultHeading}
}

// FlightLimits bounds the simulation. All fields are read-only after
// construction.
type FlightLimits struct {
	TickHz            uint32  `json:"tick_hz"`
	BaseAccel         float64 `json:"base_accel"`
	MaxSpeed          float64 `json:"max_speed"`
	MinExtent         float64 `json:"min_extent"`
	MaxExtent         float64 `json:"max_extent"`
	MaxCenterAbs      float64 `json:"max_center_abs"`
	ZoomBase          float64 `json:"zoom_base"`
	ZoomRate          float64 `json:"zoom_rate"`
	MaxTicksPerRedraw uint32  `json:"max_ticks_per_redraw"`
}

// DefaultFlightLimits returns the limits used by the viewer.
func DefaultFlightLimits() FlightLimits {
	return FlightLimits{
		TickHz:            60,
		BaseAccel:         0.5,
		MaxSpeed:          5.0,
		MinExtent:         1e-15,
		MaxExtent:         20.0,
		MaxCenterAbs:      100.0,
		ZoomBase:          2.0,
		ZoomRate:          1.0,
		MaxTicksPerRedraw: 10,
	}
}

// Dt returns the fixed tick length in seconds, or 0 when TickHz is 0.
func (l FlightLimits) Dt() float64 {
	if l.TickHz == 0 {
		return 0
	}
	return 1 / float64(l.TickHz)
}

// LoadFlightLimits parses JSON limits. Fields missing from the document keep
// their DefaultFlightLimits values.
func LoadFlightLimits(jsonData []byte) (FlightLimits, error) {
	limits := DefaultFlightLimits()
	if err := json.Unmarshal(jsonData, &limits); err != nil {
		return FlightLimits{}, fmt.Errorf("parse flight limits: %w", err)
	}
	for name, v := range map[string]float64{
		"base_accel":     limits.BaseAccel,
		"max_speed":      limits.MaxSpeed,
		"min_extent":     limits.MinExtent,
		"max_extent":     limits.MaxExtent,
		"max_center_abs": limits.MaxCenterAbs,
		"zoom_base":      limits.ZoomBase,
		"zoom_rate":      limits.ZoomRate,
	} {
		if !finite(v) {
			return FlightLimits{}, fmt.Errorf("parse flight limits: %s is not finite", name)
		}
	}
	if limits.MinExtent <= 0 || limits.MaxExtent <= 0 {
		return FlightLimits{}, fmt.Errorf("parse flight limits: extents must be positive")
	}
	if limits.ZoomBase <= 0 {
		return FlightLimits{}, fmt.Errorf("parse flight limits: zoom_base must be positive")
	}
	return limits, nil
}

// FlightWarning names the most recent clamp or reset. WarningNone means no
// warning.
type FlightWarning uint8

const (
	WarningNone FlightWarning = iota
	WarningSpeedClamped
	WarningCenterClamped
	WarningExtentClamped
	WarningNonFiniteReset
)

func (w FlightWarning) String() string {
	switch w {
	case WarningSpeedClamped:
		return "speed clamped"
	case WarningCenterClamped:
		return "center clamped"
	case WarningExtentClamped:
		return "extent clamped"
	case WarningNonFiniteReset:
		return "non-finite reset"
	default:
		return ""
	}
}

// FlightStatus is what the HUD shows.
type FlightStatus struct {
	Paused      bool
	Speed       float64
	Zoom        float64
	Heading     Vec2
	LastWarning FlightWarning
}

// UpdateReport is returned by the per-tick region update.
type UpdateReport struct {
	Clamped bool
	Warning FlightWarning
}

// MotionStepReport describes one StepMotion call.
type MotionStepReport struct {
	PauseToggled     bool
	SpeedClamped     bool
	ViewShouldUpdate bool
	Warning          FlightWarning
}

// StepMotion advances m by one tick of length dt under controls c.
//
// A pause edge toggles Paused; while paused acceleration and zoom are zeroed
// and nothing else changes. Otherwise the heading follows the held direction
// keys (kept when none are held), acceleration is +BaseAccel, -BaseAccel or
// zero, and speed is integrated and clamped to ±MaxSpeed.
func StepMotion(m *MotionState, c Controls, dt float64, limits FlightLimits) MotionStepReport {
	var report MotionStepReport

	if c.PauseToggle {
		m.Paused = !m.Paused
		report.PauseToggled = true
	}
	if m.Paused {
		m.Accel = 0
		m.Zoom = 0
		return report
	}

	x := axis(c.Right, c.Left)
	y := axis(c.Down, c.Up)
	if lenSq := x*x + y*y; lenSq > 0 {
		inv := 1 / math.Sqrt(lenSq)
		m.Heading = Vec2{X: x * inv, Y: y * inv}
	}

	m.Accel = 0
	if c.Accelerate {
		m.Accel += limits.BaseAccel
	}
	if c.Decelerate {
		m.Accel -= limits.BaseAccel
	}
	m.Zoom = axis(c.ZoomIn, c.ZoomOut) * limits.ZoomRate

	if !finite(dt) {
		dt = 0
	}
	m.Speed += m.Accel * dt

	maxSpeed := math.Abs(limits.MaxSpeed)
	if m.Speed > maxSpeed {
		m.Speed = maxSpeed
		report.SpeedClamped = true
		report.Warning = WarningSpeedClamped
	} else if m.Speed < -maxSpeed {
		m.Speed = -maxSpeed
		report.SpeedClamped = true
		report.Warning = WarningSpeedClamped
	}

	report.ViewShouldUpdate = m.Speed != 0 || m.Zoom != 0
	return report
}

func axis(positive, negative bool) float64 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	}
	return 0
}
