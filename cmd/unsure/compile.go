package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"unsure/internal/buildpipeline"
	"unsure/internal/driver"
	"unsure/internal/project"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <file.uns|dir>",
	Short: "Compile unsure source to JavaScript",
	Long: `Compile a single file (JavaScript goes to stdout or -o) or a directory
(every *.uns file is compiled in parallel and written under -o, default dist).`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	addCompileFlags(compileCmd)
}

// addCompileFlags registers the flags shared by `compile` and the bare
// `unsure <path>` form.
func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "output file (file mode) or directory (directory mode)")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	cmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	if cmd.Flags().Lookup("runtime") == nil {
		addCodegenFlags(cmd)
	}
	addCacheFlags(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", path, err)
	}

	manifestDir := path
	if !st.IsDir() {
		manifestDir = filepath.Dir(path)
	}
	manifest, err := loadManifest(manifestDir)
	if err != nil {
		return err
	}
	codegenOpts, err := resolveCodegen(cmd, manifest)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts := driver.CompileOptions{
		Codegen:        codegenOpts,
		MaxDiagnostics: g.maxDiagnostics,
		EnableTimings:  g.timings,
		Cache:          openCache(cmd),
		Jobs:           jobs,
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	if st.IsDir() {
		if out == "" {
			out = project.DefaultOutDir
		}
		return compileTree(cmd, g, path, out, opts)
	}
	return compileOne(cmd, g, path, out, opts)
}

func compileOne(cmd *cobra.Command, g globalFlags, path, out string, opts driver.CompileOptions) error {
	res, err := driver.Compile(cmd.Context(), path, opts)
	if res != nil {
		if rerr := reportDiagnostics(cmd, g, res.Bag, res.FileSet); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if res.Bag.HasErrors() {
		return silentError{fmt.Errorf("%s: compilation failed", path)}
	}

	if out == "" || out == "-" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), res.Output)
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(out, []byte(res.Output), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if !g.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
	}
	return nil
}

// compileTree builds every source under srcDir into outDir, optionally
// behind the progress view.
func compileTree(cmd *cobra.Command, g globalFlags, srcDir, outDir string, opts driver.CompileOptions) error {
	tui, err := progressEnabled(cmd, g)
	if err != nil {
		return err
	}
	req := &buildpipeline.BuildRequest{SrcDir: srcDir, OutDir: outDir, Compile: opts}
	return runTreeBuild(cmd, g, req, tui, "compiling "+srcDir)
}

// runTreeBuild runs req, prints per-file diagnostics, optional stage
// timings and a summary line.
func runTreeBuild(cmd *cobra.Command, g globalFlags, req *buildpipeline.BuildRequest, tui bool, title string) error {
	start := time.Now()
	var (
		result buildpipeline.BuildResult
		err    error
	)
	if tui {
		files, ferr := buildpipeline.Files(req.SrcDir)
		if ferr != nil {
			return ferr
		}
		result, err = runBuildWithUI(cmd.Context(), title, files, req)
	} else {
		result, err = buildpipeline.Build(cmd.Context(), req)
	}

	for _, fr := range result.Files {
		if rerr := reportDiagnostics(cmd, g, fr.Bag, result.FileSet); rerr != nil {
			return rerr
		}
		if fr.Err != nil && fr.Bag != nil && !fr.Bag.HasErrors() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", fr.Path, fr.Err)
		}
	}
	if g.timings {
		printStageTimings(cmd.ErrOrStderr(), result.Timings)
	}
	if err != nil {
		if errors.Is(err, buildpipeline.ErrBuildFailed) {
			return silentError{err}
		}
		return err
	}
	if !g.quiet {
		printBuildSummary(cmd, result, req.OutDir, time.Since(start))
	}
	return nil
}

func printBuildSummary(cmd *cobra.Command, result buildpipeline.BuildResult, outDir string, elapsed time.Duration) {
	cached := 0
	for _, fr := range result.Files {
		if fr.Cached {
			cached++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "compiled %d files (%d cached) into %s in %.1f ms\n",
		len(result.Files), cached, outDir, toMillis(elapsed))
}

// compileSnippet handles `unsure -c <code>`.
func compileSnippet(cmd *cobra.Command, code string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, err := loadManifest(wd)
	if err != nil {
		return err
	}
	codegenOpts, err := resolveCodegen(cmd, manifest)
	if err != nil {
		return err
	}
	res, err := driver.CompileSource(cmd.Context(), "<code>", code, driver.CompileOptions{
		Codegen:        codegenOpts,
		MaxDiagnostics: g.maxDiagnostics,
		EnableTimings:  g.timings,
	})
	if res != nil {
		if rerr := reportDiagnostics(cmd, g, res.Bag, res.FileSet); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if res.Bag.HasErrors() {
		return silentError{errors.New("compilation failed")}
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), res.Output)
	return err
}
