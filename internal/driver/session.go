package driver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fortio.org/safecast"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/lexer"
	"hlslc/internal/observ"
	"hlslc/internal/parser"
	"hlslc/internal/project"
	"hlslc/internal/sema"
	"hlslc/internal/source"
	"hlslc/internal/trace"
)

// Result is the outcome of one compile session.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Stage   ir.Stage
	Bag     *diag.Bag
	// Parsed is false when the grammar stopped on a syntax error.
	Parsed bool
	// Sema is empty when the result came from the disk cache.
	Sema   sema.Result
	IR     string
	Timing *observ.Report
	Cached bool
}

// Failed reports whether the session produced no usable module.
func (r *Result) Failed() bool {
	return r == nil || !r.Parsed || r.Bag.HasErrors()
}

// CompileFile loads path into a fresh file set and compiles it.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return Compile(ctx, fs, fs.Get(id), opts), nil
}

// CompileSource compiles in-memory text, e.g. stdin.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return Compile(ctx, fs, fs.Get(id), opts)
}

// Compile runs one session over file: the grammar drives the semantic
// context, then the context is finished into a module.
func Compile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Result {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, file.Path, trace.ParentFromContext(ctx))

	stage := opts.stageFor(file.Path)
	res := &Result{FileSet: fs, File: file, Stage: stage}

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	phase := func(name string, fn func() string) {
		opts.Observer.emit(PhaseEvent{File: file.Path, Name: name, Status: PhaseStart})
		start := time.Now()
		if timer != nil {
			timer.Time(name, fn)
		} else {
			fn()
		}
		opts.Observer.emit(PhaseEvent{File: file.Path, Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
	}

	key := project.Combine(project.Digest(file.Hash), opts.fingerprint(stage))
	if opts.Cache != nil {
		hit := false
		phase(PhaseCache, func() string {
			var payload CachedResult
			ok, err := opts.Cache.Get(key, &payload)
			if err != nil {
				trace.Point(tracer, trace.ScopeFile, "cache_error", err.Error(), span.ID())
				return "error"
			}
			if ok && payload.restore(res) {
				hit = true
				return "hit"
			}
			return "miss"
		})
		if hit {
			opts.Observer.emit(PhaseEvent{File: file.Path, Name: PhaseDone, Status: PhaseEnd, Failed: res.Failed()})
			span.WithExtra("cache", "hit").End(fmt.Sprintf("errors=%d", res.Bag.ErrorCount()))
			res.finishTiming(timer)
			return res
		}
	}

	res.Bag = diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: res.Bag}
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		maxErrors = 0
	}

	sc := sema.New(sema.Options{
		Reporter:             reporter,
		Tracer:               tracer,
		Stage:                stage,
		EntryPoint:           opts.EntryPoint,
		Resources:            opts.Resources,
		Shifts:               opts.Shifts,
		FlattenUniformArrays: opts.FlattenUniformArrays,
		DefaultRowMajor:      opts.RowMajor,
		TraceParent:          span.ID(),
	})

	phase(PhaseParse, func() string {
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		res.Parsed = parser.Parse(lexer.NewStream(lx), sc, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
		return fmt.Sprintf("parsed=%t diags=%d", res.Parsed, res.Bag.Len())
	})
	phase(PhaseFinish, func() string {
		res.Sema = sc.Finish()
		return fmt.Sprintf("errors=%d warnings=%d", res.Sema.Errors, res.Sema.Warnings)
	})

	applyWarningPolicy(res.Bag, opts)

	if opts.EmitIR && !res.Failed() {
		phase(PhaseEmit, func() string {
			var sb strings.Builder
			ir.DumpModule(&sb, res.Sema.Module)
			res.IR = sb.String()
			return fmt.Sprintf("bytes=%d", len(res.IR))
		})
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newCachedResult(res)); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache_error", err.Error(), span.ID())
		}
	}

	opts.Observer.emit(PhaseEvent{File: file.Path, Name: PhaseDone, Status: PhaseEnd, Failed: res.Failed()})
	span.End(fmt.Sprintf("parsed=%t errors=%d", res.Parsed, res.Bag.ErrorCount()))
	res.finishTiming(timer)
	return res
}

func (r *Result) finishTiming(timer *observ.Timer) {
	if timer == nil {
		return
	}
	report := timer.Report()
	r.Timing = &report
	appendTimingDiagnostic(r.Bag, timingPayload{
		Kind:    "file",
		Path:    r.File.Path,
		Stage:   r.Stage.String(),
		Cached:  r.Cached,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
}

func applyWarningPolicy(bag *diag.Bag, opts Options) {
	if opts.IgnoreWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity != diag.SevWarning && d.Severity != diag.SevInfo
		})
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
	}
	// Пересортировываем после изменения severity
	bag.Sort()
}
