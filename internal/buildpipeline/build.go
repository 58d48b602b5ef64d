// Package buildpipeline compiles a source tree into an output tree and
// reports per-file progress.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"unsure/internal/diag"
	"unsure/internal/driver"
	"unsure/internal/source"
)

// BuildRequest configures one build.
type BuildRequest struct {
	SrcDir   string
	OutDir   string
	OutExt   string // default ".js"
	Compile  driver.CompileOptions
	Progress ProgressSink
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Path    string // relative to SrcDir, forward slashes
	OutPath string // empty when nothing was written
	Cached  bool
	Bag     *diag.Bag
	Err     error
}

type BuildResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings *Timings
	Failed  int
}

// ErrBuildFailed is returned when at least one file did not compile.
var ErrBuildFailed = errors.New("build failed")

// Files lists the display names of every source file under dir, in build order.
func Files(dir string) ([]string, error) {
	files, err := driver.ListSources(dir)
	if err != nil {
		return nil, err
	}
	return DisplayFiles(files, dir), nil
}

// Build compiles every source file under req.SrcDir and writes the modules
// that compiled cleanly under req.OutDir, mirroring the directory layout.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	result := BuildResult{Timings: &Timings{}}
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil || req.SrcDir == "" {
		return result, fmt.Errorf("missing source directory")
	}
	if req.OutDir == "" {
		return result, fmt.Errorf("missing output directory")
	}
	ext := req.OutExt
	if ext == "" {
		ext = ".js"
	}

	files, err := Files(req.SrcDir)
	if err != nil {
		return result, err
	}
	emitQueued(req.Progress, files)

	obs := &progressObserver{sink: req.Progress, base: req.SrcDir, timings: result.Timings}
	opts := req.Compile
	user := opts.Observer
	opts.Observer = func(ev driver.FileEvent) {
		obs.observe(ev)
		if user != nil {
			user(ev)
		}
	}

	fileSet, compiled, err := driver.CompileDir(ctx, req.SrcDir, opts)
	result.FileSet = fileSet
	if err != nil {
		emit(req.Progress, Event{Status: StatusError, Err: err})
		return result, err
	}

	result.Files = make([]FileResult, len(compiled))
	for i, c := range compiled {
		fr := FileResult{Path: displayPath(c.Path, req.SrcDir), Cached: c.Cached, Bag: c.Bag, Err: c.Err}
		switch {
		case c.Err != nil || c.Bag.HasErrors():
			result.Failed++
			emit(req.Progress, Event{File: fr.Path, Status: StatusError, Err: c.Err})
		default:
			start := time.Now()
			fr.OutPath, fr.Err = writeOutput(req.OutDir, fr.Path, ext, c.Output)
			elapsed := time.Since(start)
			result.Timings.Add(StageWrite, elapsed)
			if fr.Err != nil {
				result.Failed++
				fr.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{File: c.FileID}, fr.Err.Error()))
				emit(req.Progress, Event{File: fr.Path, Stage: StageWrite, Status: StatusError, Err: fr.Err, Elapsed: elapsed})
			} else {
				emit(req.Progress, Event{File: fr.Path, Stage: StageWrite, Status: StatusDone, Elapsed: elapsed})
			}
		}
		result.Files[i] = fr
	}

	if result.Failed > 0 {
		err = fmt.Errorf("%w: %d of %d files", ErrBuildFailed, result.Failed, len(compiled))
		emit(req.Progress, Event{Status: StatusError, Err: err})
		return result, err
	}
	emit(req.Progress, Event{Status: StatusDone})
	return result, nil
}

// OutputPath maps a display path such as "lib/a.uns" to its output file.
func OutputPath(outDir, rel, ext string) string {
	rel = strings.TrimSuffix(filepath.FromSlash(rel), driver.SourceExt) + ext
	return filepath.Join(outDir, rel)
}

func writeOutput(outDir, rel, ext, js string) (string, error) {
	path := OutputPath(outDir, rel, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(js), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
