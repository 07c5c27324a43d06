package ui

import (
	"fmt"
	"io"
	"sync"

	"hlslc/internal/buildpipeline"
)

// LineSink prints one line per finished file. It is the progress output
// when stdout is not a terminal.
type LineSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLineSink(w io.Writer) *LineSink { return &LineSink{w: w} }

func (s *LineSink) OnEvent(ev buildpipeline.Event) {
	if ev.File == "" {
		return
	}
	var line string
	switch ev.Status {
	case buildpipeline.StatusDone:
		if ev.Stage != buildpipeline.StageFinish {
			return
		}
		line = fmt.Sprintf("%12s %s", "ok", ev.File)
	case buildpipeline.StatusError:
		line = fmt.Sprintf("%12s %s", "error", ev.File)
		if ev.Err != nil {
			line += ": " + ev.Err.Error()
		}
	default:
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}
