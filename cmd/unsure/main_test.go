package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"unsure/internal/buildpipeline"
	"unsure/internal/diag"
	"unsure/internal/fswatch"
	"unsure/internal/source"
)

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit ui modes are not honored")
	}
}

func TestIsIncomplete(t *testing.T) {
	bag := func(codes ...diag.Code) *diag.Bag {
		b := diag.NewBag(10)
		for _, c := range codes {
			b.Add(diag.NewError(c, source.Span{}, "x"))
		}
		return b
	}
	tests := []struct {
		name string
		bag  *diag.Bag
		want bool
	}{
		{"clean", bag(), false},
		{"open brace", bag(diag.SynUnclosedBrace), true},
		{"open paren", bag(diag.SynUnclosedParen), true},
		{"open string", bag(diag.LexUnterminatedString), true},
		{"real error", bag(diag.SynMissingOperand), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := isIncomplete(tt.bag); got != tt.want {
			t.Errorf("%s: isIncomplete = %v", tt.name, got)
		}
	}
}

func TestRemoveStaleOutputs(t *testing.T) {
	root := t.TempDir()
	req := &buildpipeline.BuildRequest{SrcDir: filepath.Join(root, "src"), OutDir: filepath.Join(root, "dist")}
	gone := writeSource(t, req.OutDir, "lib/gone.js", "x")
	kept := writeSource(t, req.OutDir, "kept.js", "x")

	removeStaleOutputs(req, []fswatch.Change{
		{Path: filepath.Join(req.SrcDir, "lib", "gone.uns"), Op: fswatch.OpRemove},
		{Path: filepath.Join(req.SrcDir, "kept.uns"), Op: fswatch.OpWrite},
	})
	if _, err := os.Stat(gone); !os.IsNotExist(err) {
		t.Errorf("%s still exists", gone)
	}
	if _, err := os.Stat(kept); err != nil {
		t.Errorf("%s was removed: %v", kept, err)
	}
}

func TestCodeFlag(t *testing.T) {
	out, _, err := execute(t, "-c", "print('hi');")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `$print[s.call](string("hi"))`) {
		t.Errorf("output = %q", out)
	}
}

func TestCompileFileCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.uns", "def sq(x) { return x * x; }\nprint(sq(4));\n")

	out, _, err := execute(t, "compile", "--no-cache", "--module", "cjs", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `const $sq=func(function($x){return $x[s.mul]($x)},"sq")`) {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "require(") {
		t.Errorf("--module cjs ignored: %q", out)
	}

	target := filepath.Join(dir, "out", "main.js")
	if _, _, err := execute(t, "compile", "--no-cache", "-o", target, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(target)
	if err != nil || !strings.Contains(string(data), "$sq") {
		t.Errorf("written output = %q, %v", data, err)
	}
}

func TestCompileReportsSyntaxErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.uns", "let x = 1 +;\n")
	out, errOut, err := execute(t, "compile", "--no-cache", path)
	if err == nil || !isSilent(err) {
		t.Fatalf("err = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "bad.uns:1:11") || !strings.Contains(errOut, "SYN") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestShortDiagnostics(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.uns", "let x = 1 +;\n")
	_, errOut, err := execute(t, "compile", "--no-cache", "--diagnostics", "short", "--path-mode", "basename", path)
	if err == nil {
		t.Fatal("expected a failure")
	}
	if !strings.Contains(errOut, "bad.uns:1:11: ERROR SYN") || strings.Contains(errOut, "^") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestInitAndBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	out, _, err := execute(t, "init", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "unsure.toml") {
		t.Errorf("init output = %q", out)
	}

	out, _, err = execute(t, "build", "--no-cache", "--ui", "off", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "compiled 1 files") {
		t.Errorf("build output = %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "dist", "main.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "$greet") {
		t.Errorf("main.js = %q", data)
	}

	if _, _, err := execute(t, "init", dir); err == nil {
		t.Error("second init succeeded")
	}
}

func TestBuildWithoutManifest(t *testing.T) {
	_, _, err := execute(t, "build", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no unsure.toml") {
		t.Errorf("err = %v", err)
	}
}

func TestTokenizeAndParseCommands(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.uns", "x = 1;\n")

	out, _, err := execute(t, "tokenize", "--format", "json", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"kind"`) || strings.Contains(out, `"Space"`) {
		t.Errorf("tokens = %q", out)
	}

	out, _, err = execute(t, "parse", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Assignment @1:1") {
		t.Errorf("ast = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"tool": "unsure"`) {
		t.Errorf("version = %q", out)
	}
	if _, _, err := execute(t, "version", "--format", "xml"); err == nil {
		t.Error("unknown format accepted")
	}
}
