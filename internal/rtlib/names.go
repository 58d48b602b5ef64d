package rtlib

import (
	"unsure/internal/ast"
)

// Runtime bindings referenced by generated code.
const (
	Truthy         = "truthy"
	Func           = "func"
	CreateSubclass = "createSubclass"
	Any            = "$any"
	Null           = "$null"
	True           = "$true"
	False          = "$false"
	DebugVar       = "$__debug__"
)

// IdentPrefix keeps user names apart from runtime bindings.
const IdentPrefix = "$"

var constructors = [...]string{
	ast.LitString:        "string",
	ast.LitByte:          "byte",
	ast.LitUnsignedByte:  "unsigned_byte",
	ast.LitShort:         "short",
	ast.LitUnsignedShort: "unsigned_short",
	ast.LitInt32:         "int32",
	ast.LitUnsignedInt32: "unsigned_int32",
	ast.LitLong:          "long",
	ast.LitUnsignedLong:  "unsigned_long",
	ast.LitBigint:        "bigint",
	ast.LitFloat32:       "float32",
	ast.LitDouble:        "double",
}

// Constructor returns the runtime function that builds a literal of kind k.
func Constructor(k ast.LitKind) (string, bool) {
	if int(k) >= len(constructors) || constructors[k] == "" {
		return "", false
	}
	return constructors[k], true
}

// BigintBacked reports whether the constructor of k takes a JS bigint
// argument (digits followed by `n`).
func BigintBacked(k ast.LitKind) bool {
	switch k {
	case ast.LitLong, ast.LitUnsignedLong, ast.LitBigint:
		return true
	default:
		return false
	}
}

// Exports lists every name the prelude imports, in a fixed order.
func Exports() []string {
	out := make([]string, 0, len(constructors)+8)
	out = append(out, Symbols)
	out = append(out, constructors[:]...)
	out = append(out, Func, CreateSubclass, Truthy, Any, Null, True, False)
	return out
}
