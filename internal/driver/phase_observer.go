package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// Phase names reported by Compile.
const (
	PhaseLoad   = "load"
	PhaseParse  = "parse"
	PhaseFinish = "finish"
	PhaseEmit   = "emit"
	PhaseCache  = "cache"
	// PhaseDone is the last event of every file; only its PhaseEnd is sent.
	PhaseDone = "done"
)

// PhaseEvent describes a timing phase boundary of one file.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	// Failed is meaningful on PhaseDone only.
	Failed bool
}

// PhaseObserver receives phase events emitted during Compile. CompileDir
// calls it from several goroutines.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) emit(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}
