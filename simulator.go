package fractalview

import (
	"math"
	"time"
)

// RegionUpdater applies one tick of motion to whatever the flight is
// steering. StepRegion wrapped in a closure is the usual implementation.
type RegionUpdater func(m MotionState, dt float64, limits FlightLimits) UpdateReport

// SimulationResult summarises one Advance call.
type SimulationResult struct {
	TicksRun     uint32
	StateChanged bool
	Status       FlightStatus
}

// FlightSimulator turns variable frame times into a whole number of fixed
// ticks. It is owned by the UI goroutine.
type FlightSimulator struct {
	limits      FlightLimits
	motion      MotionState
	status      FlightStatus
	accumulator float64
}

// NewFlightSimulator returns a stationary simulator.
func NewFlightSimulator(limits FlightLimits) *FlightSimulator {
	s := &FlightSimulator{limits: limits}
	s.ResetMotion()
	return s
}

// Advance adds elapsed to the time accumulator and runs as many whole ticks
// as it covers, up to MaxTicksPerRedraw. When more ticks were owed than the
// cap allows the remaining time is dropped rather than carried, so a long
// stall does not cause a burst of catch-up ticks. Each tick calls poll once
// and then update once with the post-step motion.
func (s *FlightSimulator) Advance(elapsed time.Duration, poll func() Controls, update RegionUpdater) SimulationResult {
	dt := s.limits.Dt()
	if !finite(dt) || dt <= 0 {
		return SimulationResult{Status: s.status}
	}

	s.accumulator += elapsed.Seconds()
	if !finite(s.accumulator) || s.accumulator < 0 {
		s.accumulator = 0
	}

	available := math.Floor(s.accumulator / dt)
	maxTicks := float64(s.limits.MaxTicksPerRedraw)
	ticks := uint32(math.Min(available, maxTicks))

	changed := false
	for range ticks {
		controls := poll()
		prevMotion, prevStatus := s.motion, s.status

		mr := StepMotion(&s.motion, controls, dt, s.limits)
		ur := update(s.motion, dt, s.limits)

		s.status.Paused = s.motion.Paused
		s.status.Speed = s.motion.Speed
		s.status.Zoom = s.motion.Zoom
		s.status.Heading = s.motion.Heading
		s.status.LastWarning = ur.Warning
		if s.status.LastWarning == WarningNone {
			s.status.LastWarning = mr.Warning
		}

		if s.motion != prevMotion || s.status != prevStatus || mr.ViewShouldUpdate || ur.Clamped {
			changed = true
		}
	}

	if available > maxTicks {
		s.accumulator = 0
	} else {
		s.accumulator = math.Max(0, s.accumulator-float64(ticks)*dt)
	}

	return SimulationResult{TicksRun: ticks, StateChanged: changed, Status: s.status}
}

// ResetMotion stops the flight and clears the status and accumulator.
func (s *FlightSimulator) ResetMotion() {
	s.motion = NewMotionState()
	s.status = FlightStatus{Heading: DefaultHeading}
	s.accumulator = 0
}

// Status returns the status as of the last tick.
func (s *FlightSimulator) Status() FlightStatus { return s.status }

// Motion returns the current motion state.
func (s *FlightSimulator) Motion() MotionState { return s.motion }

// Limits returns the limits the simulator was built with.
func (s *FlightSimulator) Limits() FlightLimits { return s.limits }

// IsActive reports whether the flight is moving or about to move.
func (s *FlightSimulator) IsActive() bool {
	m := s.motion
	return !m.Paused && (m.Speed != 0 || m.Accel != 0 || m.Zoom != 0)
}
