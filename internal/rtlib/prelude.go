package rtlib

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ModuleFormat selects how the prelude binds the runtime library.
type ModuleFormat uint8

const (
	ModuleESM ModuleFormat = iota
	ModuleCJS
)

func (m ModuleFormat) String() string {
	switch m {
	case ModuleESM:
		return "esm"
	case ModuleCJS:
		return "cjs"
	default:
		return fmt.Sprintf("ModuleFormat(%d)", uint8(m))
	}
}

// ParseModuleFormat accepts "esm" and "cjs" (case-insensitive).
func ParseModuleFormat(s string) (ModuleFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "esm":
		return ModuleESM, nil
	case "cjs", "commonjs":
		return ModuleCJS, nil
	default:
		return ModuleESM, fmt.Errorf("unknown module format %q (want esm or cjs)", s)
	}
}

// DefaultRuntime is the module specifier used when nothing else is configured.
const DefaultRuntime = "unsure/runtime"

// Config is the runtime side of code generation.
type Config struct {
	Runtime string
	Module  ModuleFormat
	Debug   bool
}

func DefaultConfig() Config {
	return Config{Runtime: DefaultRuntime, Module: ModuleESM, Debug: true}
}

// Prelude binds every runtime export and, in debug mode, declares the debug slot.
func Prelude(cfg Config) string {
	spec := cfg.Runtime
	if spec == "" {
		spec = DefaultRuntime
	}
	quoted := Quote(spec)
	names := strings.Join(Exports(), ",")

	var b strings.Builder
	switch cfg.Module {
	case ModuleCJS:
		fmt.Fprintf(&b, "const {%s}=require(%s);", names, quoted)
	default:
		fmt.Fprintf(&b, "import {%s} from %s;", names, quoted)
	}
	if cfg.Debug {
		b.WriteString("let " + DebugVar + "=undefined;")
	}
	return b.String()
}

// Quote renders s as a JS string literal. HTML characters stay as is.
func Quote(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // string всегда кодируется
	return strings.TrimSuffix(b.String(), "\n")
}

// Epilogue prints the debug slot when the program assigned it.
func Epilogue(cfg Config) string {
	if !cfg.Debug {
		return ""
	}
	return ";if(" + DebugVar + "!==undefined){console.log(" + DebugVar + ");};"
}
