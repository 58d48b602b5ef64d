package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"unsure/internal/project"
	"unsure/internal/version"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new unsure project",
	Long: `Initialize a new unsure project by creating a project manifest (unsure.toml)
and a hello-world entry point (src/main.uns). If [path|name] is omitted, initializes
the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	res, err := project.Init(target, version.Version)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %s\n", res.ManifestPath)
	if res.CreatedMain {
		fmt.Fprintf(out, "created %s\n", res.MainPath)
	}
	fmt.Fprintf(out, "\nnext:\n  cd %s\n  unsure build\n", res.Root)
	return nil
}
