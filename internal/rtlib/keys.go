// Package rtlib describes the contract between generated code and the
// JavaScript runtime library: dispatch keys, constructor names and the
// prelude that binds them.
package rtlib

// Symbols is the runtime binding that holds every dispatch key.
const Symbols = "s"

// Dispatch keys that are not tied to an operator symbol.
const (
	KeyCall               = "call"
	KeyGetAttr            = "getattr"
	KeySetAttr            = "setattr"
	KeyGetItem            = "get_item"
	KeySetItem            = "set_item"
	KeyGetSlice           = "get_slice"
	KeySetSlice           = "set_slice"
	KeyTernaryConditional = "ternary_conditional"
)

var unaryKeys = map[string]string{
	"+":      "unary_plus",
	"-":      "unary_minus",
	"++":     "increment",
	"--":     "decrement",
	"!":      "not",
	"~":      "boolean_not",
	"typeof": "typeof",
}

var binaryKeys = map[string]string{
	"&&":         "boolean_and",
	"||":         "boolean_or",
	"^^":         "boolean_xor",
	"==":         "eq",
	"!=":         "ne",
	"<":          "lt",
	"<=":         "le",
	">":          "gt",
	">=":         "ge",
	"**":         "exp",
	"+":          "add",
	"-":          "sub",
	"*":          "mul",
	"/":          "div",
	"%":          "mod",
	"&":          "and",
	"|":          "or",
	"^":          "xor",
	"extends":    "extends_",
	"instanceof": "is_instance",
	"subclassof": "is_subclass",
}

// UnaryKey returns the dispatch key of a prefix or postfix operator.
func UnaryKey(op string) (string, bool) {
	k, ok := unaryKeys[op]
	return k, ok
}

// BinaryKey returns the dispatch key of an infix operator.
func BinaryKey(op string) (string, bool) {
	k, ok := binaryKeys[op]
	return k, ok
}

// Ref renders the computed-member selector for key: `[s.key]`.
func Ref(key string) string {
	return "[" + Symbols + "." + key + "]"
}
