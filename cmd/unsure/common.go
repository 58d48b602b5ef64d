package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"unsure/internal/codegen"
	"unsure/internal/diag"
	"unsure/internal/diagfmt"
	"unsure/internal/driver"
	"unsure/internal/project"
	"unsure/internal/rtlib"
	"unsure/internal/source"
	"unsure/internal/version"
)

var errNoManifest = errors.New("no unsure.toml found\nrun `unsure init` or pass the source directory explicitly, e.g.:\n  unsure compile src -o dist")

type globalFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	pathMode       diagfmt.PathMode
	color          bool
}

func readGlobals(cmd *cobra.Command) (globalFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var g globalFlags
	var err error
	if g.quiet, err = pf.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = pf.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.diagFormat, err = pf.GetString("diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	switch g.diagFormat {
	case "pretty", "json", "short":
	default:
		return g, fmt.Errorf("unknown diagnostics format %q (expected pretty|json|short)", g.diagFormat)
	}
	pathMode, err := pf.GetString("path-mode")
	if err != nil {
		return g, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if g.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return g, fmt.Errorf("unknown path mode %q (expected auto|absolute|relative|basename)", pathMode)
	}
	g.color = useColor(cmd, os.Stderr)
	return g, nil
}

// reportDiagnostics prints bag to stderr in the selected format.
func reportDiagnostics(cmd *cobra.Command, g globalFlags, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 || fs == nil {
		return nil
	}
	bag.Sort()
	out := cmd.ErrOrStderr()
	switch g.diagFormat {
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{IncludePositions: true, PathMode: g.pathMode, Max: g.maxDiagnostics, IncludeNotes: true})
	case "short":
		_, err := io.WriteString(out, diag.FormatShort(bag.Items(), fs, true))
		return err
	}
	diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{Color: g.color, Context: 1, PathMode: g.pathMode, ShowNotes: true})
	return nil
}

// addCodegenFlags registers the flags that override [compiler] in unsure.toml.
func addCodegenFlags(cmd *cobra.Command) {
	cmd.Flags().String("runtime", "", "module specifier of the runtime library (default "+rtlib.DefaultRuntime+")")
	cmd.Flags().String("module", "", "output module format (esm|cjs)")
	cmd.Flags().Bool("debug", true, "emit the $__debug__ epilogue")
}

// resolveCodegen layers command flags over the manifest (if any) over the
// generator defaults.
func resolveCodegen(cmd *cobra.Command, m *project.Manifest) (codegen.Options, error) {
	opts := m.CodegenOptions()
	flags := cmd.Flags()
	if flags.Changed("runtime") {
		runtime, _ := flags.GetString("runtime")
		if strings.TrimSpace(runtime) == "" {
			return opts, errors.New("--runtime must not be empty")
		}
		opts.Runtime = runtime
	}
	if flags.Changed("module") {
		value, _ := flags.GetString("module")
		format, err := rtlib.ParseModuleFormat(value)
		if err != nil {
			return opts, err
		}
		opts.Module = format
	}
	if flags.Changed("debug") {
		opts.Debug, _ = flags.GetBool("debug")
	}
	return opts, nil
}

// loadManifest discovers unsure.toml above dir and checks the compiler
// requirement. A missing manifest is not an error.
func loadManifest(dir string) (*project.Manifest, error) {
	m, ok, err := project.Discover(dir)
	if err != nil || !ok {
		return nil, err
	}
	if err := m.CheckCompiler(version.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", m.Path, err)
	}
	return m, nil
}

// openCache returns the shared compile cache unless --no-cache is set.
// A cache that cannot be opened only disables caching.
func openCache(cmd *cobra.Command) *driver.DiskCache {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		return nil
	}
	cache, err := driver.OpenDiskCache("unsure")
	if err != nil {
		return nil
	}
	if clear, _ := cmd.Flags().GetBool("clear-cache"); clear {
		_ = cache.DropAll()
	}
	return cache
}

func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-cache", false, "do not read or write the compile cache")
	cmd.Flags().Bool("clear-cache", false, "drop the compile cache before compiling")
}
