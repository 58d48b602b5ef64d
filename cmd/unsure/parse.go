package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unsure/internal/ast"
	"unsure/internal/diagfmt"
	"unsure/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.uns|dir>",
	Short: "Parse unsure source and print the syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel files in directory mode (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	var printAST func(io.Writer, *ast.Program) error
	switch format {
	case "pretty":
		printAST = diagfmt.FormatASTPretty
	case "json":
		printAST = diagfmt.FormatASTJSON
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	path := args[0]
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", path, err)
	}
	out := cmd.OutOrStdout()

	if !st.IsDir() {
		result, err := driver.Parse(path, g.maxDiagnostics)
		if result != nil {
			if rerr := reportDiagnostics(cmd, g, result.Bag, result.FileSet); rerr != nil {
				return rerr
			}
		}
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if result.Program == nil {
			return silentError{errors.New("parsing failed")}
		}
		return printAST(out, result.Program)
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	fileSet, results, err := driver.ParseDir(cmd.Context(), path, g.maxDiagnostics, jobs)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	failed := 0
	for _, r := range results {
		if err := reportDiagnostics(cmd, g, r.Bag, fileSet); err != nil {
			return err
		}
		if r.Program == nil {
			failed++
			continue
		}
		if format == "pretty" {
			fmt.Fprintf(out, "== %s ==\n", r.Path)
		}
		if err := printAST(out, r.Program); err != nil {
			return err
		}
	}
	if failed > 0 {
		return silentError{fmt.Errorf("parsing failed in %d files", failed)}
	}
	return nil
}
