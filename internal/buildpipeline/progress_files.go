package buildpipeline

import (
	"path/filepath"
	"strings"

	"unsure/internal/driver"
)

// displayPath renders file relative to base with forward slashes; files
// outside base keep their cleaned path.
func displayPath(file, base string) string {
	path := filepath.Clean(filepath.FromSlash(file))
	if base != "" {
		absBase, err1 := filepath.Abs(base)
		absPath, err2 := filepath.Abs(path)
		if err1 == nil && err2 == nil {
			if rel, err := filepath.Rel(absBase, absPath); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
	}
	return filepath.ToSlash(path)
}

// DisplayFiles maps source paths to the names shown in progress output.
func DisplayFiles(files []string, base string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = displayPath(f, base)
	}
	return out
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

func emitQueued(sink ProgressSink, files []string) {
	for _, f := range files {
		emit(sink, Event{File: f, Status: StatusQueued})
	}
}

// progressObserver turns driver stage events into progress events and
// stage timings.
type progressObserver struct {
	sink    ProgressSink
	base    string
	timings *Timings
}

func (o *progressObserver) observe(ev driver.FileEvent) {
	file := displayPath(ev.Path, o.base)
	stage := Stage(ev.Stage)
	switch ev.Status {
	case driver.FileStarted:
		emit(o.sink, Event{File: file, Stage: stage, Status: StatusWorking})
	case driver.FileFinished:
		o.timings.Add(stage, ev.Elapsed)
	case driver.FileFailed:
		o.timings.Add(stage, ev.Elapsed)
		emit(o.sink, Event{File: file, Stage: stage, Status: StatusError, Err: ev.Err, Elapsed: ev.Elapsed})
	case driver.FileCached:
		emit(o.sink, Event{File: file, Stage: StageCodegen, Status: StatusCached})
	}
}
