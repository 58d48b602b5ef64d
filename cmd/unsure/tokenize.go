package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unsure/internal/diagfmt"
	"unsure/internal/driver"
	"unsure/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.uns|dir>",
	Short: "Tokenize unsure source",
	Long:  `Tokenize breaks an unsure source file (or every file of a directory) into its tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("all", false, "include whitespace and newline tokens")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel files in directory mode (0=auto)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	printTokens, err := tokenPrinter(format, diagfmt.TokenOpts{SkipWhitespace: !all})
	if err != nil {
		return err
	}

	path := args[0]
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", path, err)
	}
	out := cmd.OutOrStdout()

	if !st.IsDir() {
		result, err := driver.Tokenize(path, g.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if err := reportDiagnostics(cmd, g, result.Bag, result.FileSet); err != nil {
			return err
		}
		if err := printTokens(out, result.Tokens); err != nil {
			return err
		}
		if result.Bag.HasErrors() {
			return silentError{errors.New("tokenization failed")}
		}
		return nil
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	fileSet, results, err := driver.TokenizeDir(cmd.Context(), path, g.maxDiagnostics, jobs)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	failed := 0
	for _, r := range results {
		if err := reportDiagnostics(cmd, g, r.Bag, fileSet); err != nil {
			return err
		}
		if r.Bag.HasErrors() {
			failed++
		}
		if format == "pretty" {
			fmt.Fprintf(out, "== %s ==\n", r.Path)
		}
		if err := printTokens(out, r.Tokens); err != nil {
			return err
		}
	}
	if failed > 0 {
		return silentError{fmt.Errorf("tokenization failed in %d files", failed)}
	}
	return nil
}

func tokenPrinter(format string, opts diagfmt.TokenOpts) (func(io.Writer, []token.Token) error, error) {
	switch format {
	case "pretty":
		return func(w io.Writer, toks []token.Token) error { return diagfmt.FormatTokensPretty(w, toks, opts) }, nil
	case "json":
		return func(w io.Writer, toks []token.Token) error { return diagfmt.FormatTokensJSON(w, toks, opts) }, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
