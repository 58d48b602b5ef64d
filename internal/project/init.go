package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"unsure/internal/rtlib"
)

// DefaultName is used when the target directory has no usable name.
const DefaultName = "unsure-project"

// ErrAlreadyInitialized is returned by Init when unsure.toml exists.
var ErrAlreadyInitialized = errors.New("project already initialized")

var nameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// InitResult lists what Init wrote.
type InitResult struct {
	Root         string
	ManifestPath string
	MainPath     string
	CreatedMain  bool
}

// DefaultConfig returns the manifest written by `unsure init`.
func DefaultConfig(name, compilerVersion string) Config {
	debug := true
	cfg := Config{
		Package: PackageSection{Name: name, Version: "0.1.0"},
		Compiler: CompilerSection{
			Runtime: rtlib.DefaultRuntime,
			Module:  rtlib.ModuleESM.String(),
			Debug:   &debug,
		},
		Build: BuildSection{Src: DefaultSrcDir, Out: DefaultOutDir},
	}
	if compilerVersion != "" {
		cfg.Compiler.Requires = ">=" + compilerVersion
	}
	return cfg
}

// Encode renders cfg as TOML.
func Encode(cfg Config) (string, error) {
	var b strings.Builder
	b.WriteString("# unsure project manifest\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ProjectName derives a package name from a directory.
func ProjectName(dir string) string {
	name := strings.TrimSpace(filepath.Base(dir))
	if !nameRe.MatchString(name) {
		return DefaultName
	}
	return name
}

// Init creates unsure.toml and src/main.uns under dir. An existing
// main.uns is kept.
func Init(dir, compilerVersion string) (InitResult, error) {
	res := InitResult{Root: dir}
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return res, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return res, fmt.Errorf("%q is not a directory", dir)
	}

	res.ManifestPath = filepath.Join(dir, ManifestName)
	if _, err := os.Stat(res.ManifestPath); err == nil {
		return res, fmt.Errorf("%w: %s exists", ErrAlreadyInitialized, res.ManifestPath)
	}
	manifest, err := Encode(DefaultConfig(ProjectName(dir), compilerVersion))
	if err != nil {
		return res, err
	}
	if err := os.WriteFile(res.ManifestPath, []byte(manifest), 0o600); err != nil {
		return res, fmt.Errorf("failed to write manifest: %w", err)
	}

	srcDir := filepath.Join(dir, DefaultSrcDir)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return res, err
	}
	res.MainPath = filepath.Join(srcDir, "main.uns")
	if _, err := os.Stat(res.MainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(res.MainPath, []byte(defaultMain), 0o600); err != nil {
			return res, fmt.Errorf("failed to write main.uns: %w", err)
		}
		res.CreatedMain = true
	}
	return res, nil
}

const defaultMain = `def greet(string name) {
    return "Hello, " + name + "!";
}

print(greet("unsure"));
`
