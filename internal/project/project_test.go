package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"unsure/internal/rtlib"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
version = "1.2.3"

[compiler]
requires = ">=0.1, <1.0"
runtime = "./rt.js"
module = "cjs"
debug = false

[build]
src = "lib"
`)
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Package.Name != "demo" || m.Version().String() != "1.2.3" {
		t.Errorf("package = %+v", m.Config.Package)
	}
	if m.SrcDir() != filepath.Join(m.Root, "lib") || m.OutDir() != filepath.Join(m.Root, "dist") {
		t.Errorf("dirs = %s, %s", m.SrcDir(), m.OutDir())
	}
	opts := m.CodegenOptions()
	if opts.Runtime != "./rt.js" || opts.Module != rtlib.ModuleCJS || opts.Debug {
		t.Errorf("codegen options = %+v", opts)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no package", "[build]\nsrc = \"x\"\n", "missing [package]"},
		{"no name", "[package]\nversion = \"1.0.0\"\n", "missing [package].name"},
		{"bad version", "[package]\nname = \"a\"\nversion = \"one\"\n", "[package].version"},
		{"bad constraint", "[package]\nname = \"a\"\n[compiler]\nrequires = \"~~1\"\n", "[compiler].requires"},
		{"bad module", "[package]\nname = \"a\"\n[compiler]\nmodule = \"amd\"\n", "[compiler].module"},
		{"unknown key", "[package]\nname = \"a\"\nmain = \"x\"\n", "unknown key package.main"},
		{"not toml", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, t.TempDir(), tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCheckCompiler(t *testing.T) {
	m, err := Load(writeManifest(t, t.TempDir(), "[package]\nname = \"a\"\n[compiler]\nrequires = \">=0.2.0\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.CheckCompiler("0.2.0-dev"); err != nil {
		t.Errorf("pre-release of a matching version rejected: %v", err)
	}
	if err := m.CheckCompiler("0.1.9"); !errors.Is(err, ErrCompilerMismatch) {
		t.Errorf("err = %v", err)
	}
	if err := m.CheckCompiler("dev"); err == nil {
		t.Error("unparsable compiler version accepted")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"a\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover = %v, %v", ok, err)
	}
	want, _ := filepath.Abs(root)
	if m.Root != want {
		t.Errorf("root = %s, want %s", m.Root, want)
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	res, err := Init(dir, "0.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if !res.CreatedMain {
		t.Error("main.uns not created")
	}
	m, err := Load(res.ManifestPath)
	if err != nil {
		t.Fatalf("written manifest does not load: %v", err)
	}
	if m.Config.Package.Name != "hello" || m.Config.Compiler.Requires != ">=0.1.0" {
		t.Errorf("config = %+v", m.Config)
	}
	if opts := m.CodegenOptions(); !opts.Debug || opts.Module != rtlib.ModuleESM {
		t.Errorf("options = %+v", opts)
	}
	if _, err := Init(dir, "0.1.0"); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init err = %v", err)
	}
}

func TestProjectName(t *testing.T) {
	if got := ProjectName("/tmp/my-app"); got != "my-app" {
		t.Errorf("got %q", got)
	}
	if got := ProjectName("/tmp/123"); got != DefaultName {
		t.Errorf("got %q", got)
	}
}
