package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"unsure/internal/ast"
	"unsure/internal/diag"
	"unsure/internal/observ"
	"unsure/internal/source"
	"unsure/internal/token"
	"unsure/internal/trace"
)

// SourceExt is the extension of unsure source files.
const SourceExt = ".uns"

// TokenizeDirResult — результат токенизации одного файла.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseDirResult — результат парсинга одного файла.
type ParseDirResult struct {
	Path    string
	FileID  source.FileID
	Program *ast.Program
	Bag     *diag.Bag
}

// CompileDirResult — результат компиляции одного файла.
type CompileDirResult struct {
	Path   string
	FileID source.FileID
	Output string
	Cached bool
	Bag    *diag.Bag
	Timing *observ.Report
	Err    error // compiler defect for this file; other files still ran
}

// ListSources returns every *.uns file under dir, sorted.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) не обходим
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// dirJob is one loaded file of a directory run. file is nil when loading
// failed; the I/O diagnostic is then already in bag.
type dirJob struct {
	path string
	id   source.FileID
	file *source.File
	bag  *diag.Bag
}

func loadDir(dir string, maxDiagnostics int) (*source.FileSet, []dirJob, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	jobs := make([]dirJob, len(files))
	for i, path := range files {
		job := dirJob{path: path, bag: diag.NewBag(maxDiagnostics)}
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			// пустая заглушка, чтобы диагностика указывала на нужный путь
			stub := fileSet.AddVirtual(path, nil)
			job.bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: stub}, "failed to load file: "+loadErr.Error()))
		} else {
			job.id, job.file = id, fileSet.Get(id)
		}
		jobs[i] = job
	}
	return fileSet, jobs, nil
}

// runJobs calls work for every index with at most limit goroutines. Results
// are written by index, so no locking is needed.
func runJobs(ctx context.Context, limit, n int, work func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, n))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return work(gctx, i)
		})
	}
	return g.Wait()
}

// TokenizeDir tokenizes every source file under dir in parallel.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	fileSet, loaded, err := loadDir(dir, maxDiagnostics)
	if err != nil {
		return nil, nil, err
	}
	results := make([]TokenizeDirResult, len(loaded))
	err = runJobs(ctx, jobs, len(loaded), func(_ context.Context, i int) error {
		job := loaded[i]
		results[i] = TokenizeDirResult{Path: job.path, FileID: job.id, Bag: job.bag}
		if job.file != nil {
			results[i].Tokens = tokenizeWithEOF(job.file, job.bag)
		}
		return nil
	})
	return fileSet, results, err
}

// ParseDir parses every source file under dir in parallel.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []ParseDirResult, error) {
	fileSet, loaded, err := loadDir(dir, maxDiagnostics)
	if err != nil {
		return nil, nil, err
	}
	results := make([]ParseDirResult, len(loaded))
	err = runJobs(ctx, jobs, len(loaded), func(gctx context.Context, i int) error {
		job := loaded[i]
		results[i] = ParseDirResult{Path: job.path, FileID: job.id, Bag: job.bag}
		if job.file == nil {
			return nil
		}
		p := &pipeline{ctx: gctx, file: job.file, bag: job.bag}
		prog, perr := parseFile(p)
		results[i].Program = prog
		return perr
	})
	return fileSet, results, err
}

// CompileDir compiles every source file under dir in parallel. Syntax
// errors stay in the per-file bags; a compiler defect in one file is kept
// in its result and does not cancel the others.
func CompileDir(ctx context.Context, dir string, opts CompileOptions) (*source.FileSet, []CompileDirResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile-dir", trace.ParentID(ctx)).WithExtra("dir", dir)
	defer span.End("")

	fileSet, loaded, err := loadDir(dir, opts.MaxDiagnostics)
	if err != nil {
		span.Fail()
		return nil, nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(loaded)))

	results := make([]CompileDirResult, len(loaded))
	err = runJobs(ctx, opts.Jobs, len(loaded), func(gctx context.Context, i int) error {
		job := loaded[i]
		res := CompileDirResult{Path: job.path, FileID: job.id, Bag: job.bag}
		defer func() { results[i] = res }()
		if job.file == nil {
			opts.Observer.emit(FileEvent{Path: job.path, Stage: StageLex, Status: FileFailed})
			return nil
		}

		fileSpan := trace.Begin(tracer, trace.ScopeModule, "file:"+job.path, span.ID())
		var timer *observ.Timer
		if opts.EnableTimings {
			timer = observ.NewTimer()
		}
		out, cerr := compileFile(gctx, job.file, opts, job.bag, timer, fileSpan.ID())
		res.Output, res.Cached, res.Err = out.output, out.cached, cerr
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
		if cerr != nil || job.bag.HasErrors() {
			fileSpan.Fail()
		}
		fileSpan.End("")
		// отмена контекста — единственная причина остановить остальные файлы
		if gctx.Err() != nil {
			return gctx.Err()
		}
		return nil
	})
	if err != nil {
		span.Fail()
	}
	return fileSet, results, err
}
