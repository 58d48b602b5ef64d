// Package project loads and writes the unsure.toml project manifest.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"unsure/internal/codegen"
	"unsure/internal/rtlib"
)

const (
	DefaultSrcDir = "src"
	DefaultOutDir = "dist"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	ErrPackageNameMissing    = errors.New("missing [package].name")
	// ErrCompilerMismatch is returned when [compiler].requires excludes the running compiler.
	ErrCompilerMismatch = errors.New("compiler version does not satisfy [compiler].requires")
)

type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version,omitempty"`
}

// CompilerSection configures code generation for the whole project.
type CompilerSection struct {
	Requires string `toml:"requires,omitempty"`
	Runtime  string `toml:"runtime,omitempty"`
	Module   string `toml:"module,omitempty"`
	Debug    *bool  `toml:"debug,omitempty"`
}

type BuildSection struct {
	Src string `toml:"src,omitempty"`
	Out string `toml:"out,omitempty"`
}

// Config mirrors unsure.toml.
type Config struct {
	Package  PackageSection  `toml:"package"`
	Compiler CompilerSection `toml:"compiler"`
	Build    BuildSection    `toml:"build"`
}

// Manifest is a loaded and validated unsure.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config

	version  *semver.Version
	requires *semver.Constraints
}

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}
	if v := strings.TrimSpace(cfg.Package.Version); v != "" {
		if m.version, err = semver.NewVersion(v); err != nil {
			return nil, fmt.Errorf("%s: [package].version %q: %w", path, v, err)
		}
	}
	if r := strings.TrimSpace(cfg.Compiler.Requires); r != "" {
		if m.requires, err = semver.NewConstraint(r); err != nil {
			return nil, fmt.Errorf("%s: [compiler].requires %q: %w", path, r, err)
		}
	}
	if _, err := rtlib.ParseModuleFormat(cfg.Compiler.Module); err != nil {
		return nil, fmt.Errorf("%s: [compiler].module: %w", path, err)
	}
	return m, nil
}

// Version returns the parsed [package].version, or nil when unset.
func (m *Manifest) Version() *semver.Version {
	return m.version
}

// CheckCompiler verifies [compiler].requires against the compiler version.
// Pre-release builds are matched by their release core, so 0.2.0-dev
// satisfies ">=0.2".
func (m *Manifest) CheckCompiler(compiler string) error {
	if m.requires == nil {
		return nil
	}
	v, err := semver.NewVersion(compiler)
	if err != nil {
		return fmt.Errorf("compiler version %q: %w", compiler, err)
	}
	core, err := v.SetPrerelease("")
	if err != nil {
		return err
	}
	core, err = core.SetMetadata("")
	if err != nil {
		return err
	}
	if !m.requires.Check(&core) {
		return fmt.Errorf("%w: %s is not %s", ErrCompilerMismatch, compiler, m.requires)
	}
	return nil
}

// SrcDir returns the absolute source directory.
func (m *Manifest) SrcDir() string {
	return m.dir(m.Config.Build.Src, DefaultSrcDir)
}

// OutDir returns the absolute output directory.
func (m *Manifest) OutDir() string {
	return m.dir(m.Config.Build.Out, DefaultOutDir)
}

func (m *Manifest) dir(value, def string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = def
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(m.Root, filepath.FromSlash(value))
}

// CodegenOptions resolves [compiler] into generator options. Unset keys keep
// the generator defaults.
func (m *Manifest) CodegenOptions() codegen.Options {
	opts := codegen.DefaultOptions()
	if m == nil {
		return opts
	}
	c := m.Config.Compiler
	if r := strings.TrimSpace(c.Runtime); r != "" {
		opts.Runtime = r
	}
	if f, err := rtlib.ParseModuleFormat(c.Module); err == nil && c.Module != "" {
		opts.Module = f
	}
	if c.Debug != nil {
		opts.Debug = *c.Debug
	}
	return opts
}
