package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"hlslc/internal/diag"
	"hlslc/internal/observ"
	"hlslc/internal/source"
	"hlslc/internal/trace"
)

// ShaderExt is the extension of compilable sources. Include-only files
// (.hlsli) are skipped.
const ShaderExt = ".hlsl"

// DirStats counts outcomes of a directory compile.
type DirStats struct {
	Compiled int64
	Cached   int64
	Failed   int64
}

// DirResult holds one Result per file, in path order.
type DirResult struct {
	Root    string
	FileSet *source.FileSet
	Files   []*Result
	Timing  *observ.Report
	Stats   DirStats
}

// Failed reports whether any file failed.
func (r *DirResult) Failed() bool { return r.Stats.Failed > 0 }

// Bag merges the diagnostics of every file, sorted.
func (r *DirResult) Bag() *diag.Bag {
	out := diag.NewBag(0)
	for _, f := range r.Files {
		out.Merge(f.Bag)
	}
	out.Sort()
	return out
}

// ListShaderFiles возвращает отсортированный список всех *.hlsl файлов в директории
func ListShaderFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) пропускаем
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ShaderExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every shader under dir with at most jobs sessions in
// flight. Sessions share nothing but the read-only file set.
func CompileDir(ctx context.Context, dir string, opts Options, jobs int) (*DirResult, error) {
	files, err := ListShaderFiles(dir)
	if err != nil {
		return nil, err
	}
	return CompileFiles(ctx, dir, files, opts, jobs)
}

// CompileFiles is CompileDir over an explicit file list.
func CompileFiles(ctx context.Context, root string, files []string, opts Options, jobs int) (*DirResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "compile_dir", trace.ParentFromContext(ctx))
	ctx = trace.WithParent(ctx, span)

	res := &DirResult{
		Root:    root,
		FileSet: source.NewFileSetWithBase(root),
		Files:   make([]*Result, len(files)),
	}

	// Загружаем последовательно: FileSet не потокобезопасен на запись
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := res.FileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			id = res.FileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var compiled, cached, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(files)), 1))
	for i := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			file := res.FileSet.Get(fileIDs[i])
			var r *Result
			if loadErr, ok := loadErrors[i]; ok {
				r = loadFailure(res.FileSet, file, loadErr, opts)
			} else {
				r = Compile(gctx, res.FileSet, file, opts)
			}
			// индекс i уникален, мьютекс не нужен
			res.Files[i] = r
			compiled.Add(1)
			if r.Cached {
				cached.Add(1)
			}
			if r.Failed() {
				failed.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()

	res.Stats = DirStats{Compiled: compiled.Load(), Cached: cached.Load(), Failed: failed.Load()}
	if opts.EnableTimings {
		reports := make([]observ.Report, 0, len(res.Files))
		for _, r := range res.Files {
			if r != nil && r.Timing != nil {
				reports = append(reports, *r.Timing)
			}
		}
		merged := observ.Merge(reports...)
		res.Timing = &merged
	}
	span.WithExtra("files", strconv.Itoa(len(files))).
		End(fmt.Sprintf("failed=%d cached=%d", res.Stats.Failed, res.Stats.Cached))
	return res, err
}

func loadFailure(fs *source.FileSet, file *source.File, err error, opts Options) *Result {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: file.ID}, "failed to load file: "+err.Error()))
	opts.Observer.emit(PhaseEvent{File: file.Path, Name: PhaseDone, Status: PhaseEnd, Failed: true})
	return &Result{FileSet: fs, File: file, Stage: opts.stageFor(file.Path), Bag: bag}
}
