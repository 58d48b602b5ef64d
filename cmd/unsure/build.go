package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"unsure/internal/buildpipeline"
	"unsure/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Build the project described by unsure.toml",
	Long: `Build finds unsure.toml in dir (default: the current directory) or one of its
parents and compiles [build].src into [build].out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	buildCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	addCodegenFlags(buildCmd)
	addCacheFlags(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	req, err := projectBuildRequest(cmd, g, args)
	if err != nil {
		return err
	}
	tui, err := progressEnabled(cmd, g)
	if err != nil {
		return err
	}
	return runTreeBuild(cmd, g, req, tui, "building "+req.SrcDir)
}

// projectBuildRequest resolves the manifest above args[0] (or the working
// directory) into a build request.
func projectBuildRequest(cmd *cobra.Command, g globalFlags, args []string) (*buildpipeline.BuildRequest, error) {
	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	if start == "." {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		start = wd
	}
	manifest, err := loadManifest(start)
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, errNoManifest
	}
	codegenOpts, err := resolveCodegen(cmd, manifest)
	if err != nil {
		return nil, err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	return &buildpipeline.BuildRequest{
		SrcDir: manifest.SrcDir(),
		OutDir: manifest.OutDir(),
		Compile: driver.CompileOptions{
			Codegen:        codegenOpts,
			MaxDiagnostics: g.maxDiagnostics,
			EnableTimings:  g.timings,
			Cache:          openCache(cmd),
			Jobs:           jobs,
		},
	}, nil
}
