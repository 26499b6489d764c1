package driver

import "time"

// PhaseStatus reports whether a stage started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
	// PhaseSkipped is sent for stages that did not run.
	PhaseSkipped
)

// PhaseEvent describes a stage boundary.
type PhaseEvent struct {
	Stage       Stage
	Status      PhaseStatus
	Elapsed     time.Duration
	Diagnostics int
}

// PhaseObserver receives stage events emitted during Run.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) notify(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}
