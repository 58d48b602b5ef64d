package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"unsure/internal/buildpipeline"
	"unsure/internal/driver"
	"unsure/internal/fswatch"
	"unsure/internal/project"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [dir]",
	Short: "Rebuild on every change to a source tree",
	Long: `Watch builds the project (or the given source directory) once, then rebuilds
whenever a *.uns file changes. Outputs of deleted sources are removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("out", "o", "", "output directory when no unsure.toml is found (default dist)")
	watchCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	watchCmd.Flags().Duration("debounce", 100*time.Millisecond, "quiet period before a rebuild")
	addCodegenFlags(watchCmd)
	addCacheFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	req, err := watchRequest(cmd, g, args)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := fswatch.New(req.SrcDir, fswatch.Options{Ext: driver.SourceExt, Debounce: debounce})
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", req.SrcDir, err)
	}
	defer w.Close()
	go w.Run(ctx)

	stderr := cmd.ErrOrStderr()
	rebuild := func() {
		if err := runTreeBuild(cmd, g, req, false, ""); err != nil && !isSilent(err) {
			fmt.Fprintln(stderr, color.RedString("error:"), err)
		}
	}
	rebuild()
	if !g.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", req.SrcDir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-w.Batches():
			if !ok {
				return nil
			}
			if !g.quiet {
				for _, c := range batch {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c.Op, c.Path)
				}
			}
			removeStaleOutputs(req, batch)
			rebuild()
		case err, ok := <-w.Errors():
			if ok {
				fmt.Fprintln(stderr, color.YellowString("watch:"), err)
			}
		}
	}
}

func watchRequest(cmd *cobra.Command, g globalFlags, args []string) (*buildpipeline.BuildRequest, error) {
	req, err := projectBuildRequest(cmd, g, args)
	if err == nil {
		return req, nil
	}
	if len(args) == 0 || !errors.Is(err, errNoManifest) {
		return nil, err
	}

	// без манифеста: args[0] — каталог исходников
	codegenOpts, err := resolveCodegen(cmd, nil)
	if err != nil {
		return nil, err
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = project.DefaultOutDir
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	return &buildpipeline.BuildRequest{
		SrcDir: args[0],
		OutDir: out,
		Compile: driver.CompileOptions{
			Codegen:        codegenOpts,
			MaxDiagnostics: g.maxDiagnostics,
			EnableTimings:  g.timings,
			Cache:          openCache(cmd),
			Jobs:           jobs,
		},
	}, nil
}

// removeStaleOutputs deletes the compiled modules of removed sources.
func removeStaleOutputs(req *buildpipeline.BuildRequest, batch []fswatch.Change) {
	for _, c := range batch {
		if !c.Removed() {
			continue
		}
		rel, err := filepath.Rel(req.SrcDir, c.Path)
		if err != nil {
			continue
		}
		out := buildpipeline.OutputPath(req.OutDir, filepath.ToSlash(rel), ".js")
		_ = os.Remove(out)
	}
}
