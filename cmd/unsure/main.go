// Command unsure compiles Unsure programs to JavaScript.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"unsure/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "unsure [path]",
	Short: "The Unsure programming language",
	Long: `unsure compiles Unsure source into JavaScript modules that run on the unsure runtime.

Without arguments it starts an interactive session. With a path it compiles that
file or directory; -c compiles a snippet given on the command line.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringP("code", "c", "", "compile the given code and print the JavaScript")
	addCompileFlags(rootCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("diagnostics", "pretty", "diagnostics format (pretty|json|short)")
	rootCmd.PersistentFlags().String("path-mode", "auto", "how diagnostics show file paths (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().String("trace", "", "write a pipeline trace to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// main registers the version, wires tracing around every command and exits
// with status 1 when the command fails.
func main() {
	rootCmd.Version = version.Version

	var cleanups []func()
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		applyColorFlag(cmd)
		stopProfiles, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProfiles)
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopTrace)
		return nil
	}
	err := rootCmd.Execute()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if err != nil {
		if !isSilent(err) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

// runRoot mirrors the classic `unsure [path] [-c code]` entry point.
func runRoot(cmd *cobra.Command, args []string) error {
	code, err := cmd.Flags().GetString("code")
	if err != nil {
		return err
	}
	switch {
	case cmd.Flags().Changed("code"):
		return compileSnippet(cmd, code)
	case len(args) == 1:
		return runCompile(cmd, args)
	default:
		return runRepl(cmd, nil)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// applyColorFlag makes fatih/color follow --color for stdout.
func applyColorFlag(cmd *cobra.Command) {
	color.NoColor = !useColor(cmd, os.Stdout)
}

// silentError marks failures whose details were already printed as
// diagnostics.
type silentError struct{ err error }

func (e silentError) Error() string { return e.err.Error() }
func (e silentError) Unwrap() error { return e.err }

func isSilent(err error) bool {
	_, ok := err.(silentError)
	return ok
}
