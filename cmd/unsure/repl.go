package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"unsure/internal/codegen"
	"unsure/internal/diag"
	"unsure/internal/driver"
	"unsure/internal/version"
)

const (
	promptMain = ">>> "
	promptCont = "... "
)

const replHelp = `:help  show this message
:full  toggle printing the whole module (prelude and epilogue)
:quit  leave the session (also ctrl-d)`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive session: compile each entry and print its JavaScript",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	addCodegenFlags(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	codegenOpts, err := resolveCodegen(cmd, nil)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Unsure %s\n", version.Colored())

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ln, histPath)
	}

	r := &replSession{cmd: cmd, g: g, opts: codegenOpts}
	for {
		code, ok := r.read(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return nil
			case ":help":
				fmt.Fprintln(out, replHelp)
			case ":full":
				r.full = !r.full
				fmt.Fprintf(out, "full module output: %v\n", r.full)
			default:
				fmt.Fprintln(out, "unknown command. Type :help for the list.")
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		r.eval(code)
	}
}

type replSession struct {
	cmd  *cobra.Command
	g    globalFlags
	opts codegen.Options
	full bool
}

// read collects lines until the entry no longer ends inside an open
// delimiter. ok is false at end of input.
func (r *replSession) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// ctrl-c сбрасывает недописанный ввод
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		res, err := driver.CompileSource(r.cmd.Context(), "<repl>", src, driver.CompileOptions{Codegen: r.opts, MaxDiagnostics: r.g.maxDiagnostics})
		if err == nil && isIncomplete(res.Bag) {
			continue
		}
		return src, true
	}
}

func (r *replSession) eval(code string) {
	stderr := r.cmd.ErrOrStderr()
	res, err := driver.CompileSource(r.cmd.Context(), "<repl>", code, driver.CompileOptions{
		Codegen:        r.opts,
		MaxDiagnostics: r.g.maxDiagnostics,
		EnableTimings:  r.g.timings,
	})
	if res != nil {
		if rerr := reportDiagnostics(r.cmd, r.g, res.Bag, res.FileSet); rerr != nil {
			fmt.Fprintln(stderr, color.RedString("error:"), rerr)
		}
	}
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("error:"), err)
		return
	}
	if res.Bag.HasErrors() {
		return
	}
	text := res.Output
	if !r.full {
		if text, err = codegen.GenerateBody(res.Program); err != nil {
			fmt.Fprintln(stderr, color.RedString("error:"), err)
			return
		}
	}
	fmt.Fprint(r.cmd.OutOrStdout(), text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(r.cmd.OutOrStdout())
	}
}

// isIncomplete reports whether the only problem with an entry is a
// delimiter or string left open at the end of input.
func isIncomplete(bag *diag.Bag) bool {
	if bag == nil || !bag.HasErrors() {
		return false
	}
	for _, d := range bag.Items() {
		if d.Severity < diag.SevError {
			continue
		}
		switch d.Code {
		case diag.SynUnclosedParen, diag.SynUnclosedBracket, diag.SynUnclosedBrace, diag.LexUnterminatedString:
		default:
			return false
		}
	}
	return true
}

func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "unsure", "history")
}

func saveHistory(ln *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	if f, err := os.Create(path); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}
