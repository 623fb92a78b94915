package fractalview

// ActionKind says what Scheduler.Update did with a desired request.
type ActionKind uint8

const (
	// ActionNothingToDo means there was no pending request to submit.
	ActionNothingToDo ActionKind = iota
	// ActionSubmitted means a request was handed to the controller.
	ActionSubmitted
	// ActionCoalesced means the request is held until the in-flight job completes.
	ActionCoalesced
)

func (k ActionKind) String() string {
	switch k {
	case ActionSubmitted:
		return "submitted"
	case ActionCoalesced:
		return "coalesced"
	default:
		return "nothing-to-do"
	}
}

// SchedulerAction is the outcome of a scheduler step. Generation is set only
// for ActionSubmitted.
type SchedulerAction struct {
	Kind       ActionKind
	Generation uint64
}

// Scheduler rate-limits submissions during continuous motion: while a job is
// in flight and motion is active, newer requests overwrite a single pending
// slot instead of cancelling the in-flight job on every tick. It is owned by
// the UI goroutine and is not safe for concurrent use.
type Scheduler struct {
	pending     RenderRequest
	hasPending  bool
	inFlight    uint64
	hasInFlight bool
}

// Update records desired as the pending request and submits it when nothing
// is in flight or motion has stopped. lastCompleted is the controller's
// watermark.
func (s *Scheduler) Update(desired RenderRequest, motionActive bool, lastCompleted uint64, submit func(RenderRequest) uint64) SchedulerAction {
	s.markCompleted(lastCompleted)
	s.pending = desired
	s.hasPending = true

	if !s.hasInFlight || !motionActive {
		return s.submitPending(submit)
	}
	return SchedulerAction{Kind: ActionCoalesced}
}

// Flush submits the pending request if the in-flight job has completed.
func (s *Scheduler) Flush(lastCompleted uint64, submit func(RenderRequest) uint64) SchedulerAction {
	s.markCompleted(lastCompleted)
	if s.hasInFlight {
		if s.hasPending {
			return SchedulerAction{Kind: ActionCoalesced}
		}
		return SchedulerAction{Kind: ActionNothingToDo}
	}
	return s.submitPending(submit)
}

// ObserveCompletion clears the in-flight marker once lastCompleted reaches it.
func (s *Scheduler) ObserveCompletion(lastCompleted uint64) {
	s.markCompleted(lastCompleted)
}

// Reset drops pending and in-flight state, e.g. after switching fractal kind.
func (s *Scheduler) Reset() {
	*s = Scheduler{}
}

// HasPending reports whether a coalesced request is waiting.
func (s *Scheduler) HasPending() bool { return s.hasPending }

// InFlight returns the generation of the outstanding submission, if any.
func (s *Scheduler) InFlight() (uint64, bool) { return s.inFlight, s.hasInFlight }

func (s *Scheduler) markCompleted(lastCompleted uint64) {
	if s.hasInFlight && lastCompleted >= s.inFlight {
		s.inFlight = 0
		s.hasInFlight = false
	}
}

func (s *Scheduler) submitPending(submit func(RenderRequest) uint64) SchedulerAction {
	if !s.hasPending {
		return SchedulerAction{Kind: ActionNothingToDo}
	}
	req := s.pending
	s.pending = RenderRequest{}
	s.hasPending = false

	gen := submit(req)
	s.inFlight = gen
	s.hasInFlight = true
	return SchedulerAction{Kind: ActionSubmitted, Generation: gen}
}
