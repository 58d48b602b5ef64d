package driver

import "time"

// Stage names one pass of the per-file pipeline.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageCodegen Stage = "codegen"
)

// FileStatus reports whether a stage started or how it finished.
type FileStatus uint8

const (
	FileStarted FileStatus = iota
	FileFinished
	FileFailed
	FileCached // output came from the disk cache; no stage ran
)

// FileEvent describes a stage boundary for one file.
type FileEvent struct {
	Path    string
	Stage   Stage
	Status  FileStatus
	Elapsed time.Duration
	Err     error
}

// FileObserver receives FileEvents. Directory builds call it from several
// goroutines at once.
type FileObserver func(FileEvent)

func (o FileObserver) emit(ev FileEvent) {
	if o != nil {
		o(ev)
	}
}
