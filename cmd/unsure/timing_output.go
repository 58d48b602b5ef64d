package main

import (
	"fmt"
	"io"
	"time"

	"unsure/internal/buildpipeline"
)

// printStageTimings prints the summed wall time of each pipeline stage
// across all files of a build.
func printStageTimings(out io.Writer, timings *buildpipeline.Timings) {
	if out == nil || timings == nil {
		return
	}
	stages := []struct {
		stage buildpipeline.Stage
		label string
	}{
		{buildpipeline.StageLex, "lexed"},
		{buildpipeline.StageParse, "parsed"},
		{buildpipeline.StageCodegen, "generated"},
		{buildpipeline.StageWrite, "written"},
	}
	all := make([]buildpipeline.Stage, 0, len(stages))
	for _, s := range stages {
		all = append(all, s.stage)
		if !timings.Has(s.stage) {
			continue
		}
		fmt.Fprintf(out, "%-9s %.1f ms\n", s.label, toMillis(timings.Duration(s.stage)))
	}
	fmt.Fprintf(out, "%-9s %.1f ms\n", "total", toMillis(timings.Sum(all...)))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
