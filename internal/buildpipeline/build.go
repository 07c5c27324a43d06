package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hlslc/internal/driver"
)

// IRExt is appended to the shader name of every dump.
const IRExt = ".ir"

// BuildRequest configures a multi-file build.
type BuildRequest struct {
	// Root is the directory names are shown relative to and, with
	// OutputRoot, the base of the output tree.
	Root    string
	Files   []string
	Options driver.Options
	Jobs    int
	// OutputRoot receives one .ir per successful shader; empty disables emit.
	OutputRoot string
	Progress   ProgressSink
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	Dir     *driver.DirResult
	Outputs []string
	Timings Timings
}

// ErrBuildFailed is returned when at least one shader has errors.
var ErrBuildFailed = errors.New("build failed")

// Build compiles req.Files in parallel and writes IR dumps.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	names, byPath := progressFiles(req.Files, req.Root)
	emitQueued(req.Progress, names)

	opts := req.Options
	if req.OutputRoot != "" {
		opts.EmitIR = true
	}
	observer := &phaseObserver{sink: req.Progress, names: byPath}
	opts.Observer = chainObserver(opts.Observer, observer.OnPhase)

	start := time.Now()
	emitPipeline(req.Progress, StageParse, StatusWorking, nil, 0)
	dir, err := driver.CompileFiles(ctx, req.Root, req.Files, opts, req.Jobs)
	result.Dir = dir
	result.Timings.Set(StageParse, time.Since(start))
	if err != nil {
		emitPipeline(req.Progress, StageParse, StatusError, err, time.Since(start))
		return result, err
	}

	if req.OutputRoot != "" {
		emitStart := time.Now()
		for _, r := range dir.Files {
			if r.Failed() || r.IR == "" {
				continue
			}
			name := observer.name(r.File.Path)
			out, werr := writeIR(req.OutputRoot, name, r.IR)
			if werr != nil {
				emitFile(req.Progress, name, StageEmit, StatusError, werr, 0)
				err = errors.Join(err, werr)
				continue
			}
			result.Outputs = append(result.Outputs, out)
		}
		result.Timings.Set(StageEmit, time.Since(emitStart))
	}

	status := StatusDone
	if dir.Failed() || err != nil {
		status = StatusError
	}
	emitPipeline(req.Progress, StageEmit, status, err, time.Since(start))
	if err != nil {
		return result, err
	}
	if dir.Failed() {
		return result, fmt.Errorf("%w: %d of %d shaders have errors", ErrBuildFailed, dir.Stats.Failed, len(dir.Files))
	}
	return result, nil
}

// OutputPath is where the dump of the shader shown as name goes.
func OutputPath(outputRoot, name string) string {
	return filepath.Join(outputRoot, filepath.FromSlash(name)+IRExt)
}

func writeIR(outputRoot, name, text string) (string, error) {
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
		// файл вне корня: кладём рядом по basename
		name = filepath.Base(name)
	}
	out := OutputPath(outputRoot, name)
	if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(out, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", out, err)
	}
	return out, nil
}

type phaseObserver struct {
	sink  ProgressSink
	names map[string]string
}

func (p *phaseObserver) name(path string) string {
	if n, ok := p.names[path]; ok {
		return n
	}
	return path
}

// OnPhase переводит фазы драйвера в события прогресса.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil || p.sink == nil {
		return
	}
	name := p.name(ev.File)
	if ev.Name == driver.PhaseDone {
		status := StatusDone
		if ev.Failed {
			status = StatusError
		}
		emitFile(p.sink, name, StageFinish, status, nil, ev.Elapsed)
		return
	}
	if ev.Status != driver.PhaseStart {
		return
	}
	switch ev.Name {
	case driver.PhaseCache:
		emitFile(p.sink, name, StageCache, StatusWorking, nil, 0)
	case driver.PhaseParse:
		emitFile(p.sink, name, StageParse, StatusWorking, nil, 0)
	case driver.PhaseFinish:
		emitFile(p.sink, name, StageFinish, StatusWorking, nil, 0)
	case driver.PhaseEmit:
		emitFile(p.sink, name, StageEmit, StatusWorking, nil, 0)
	}
}

func chainObserver(first, second driver.PhaseObserver) driver.PhaseObserver {
	if first == nil {
		return second
	}
	return func(ev driver.PhaseEvent) {
		first(ev)
		second(ev)
	}
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitFile(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func emitPipeline(sink ProgressSink, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
