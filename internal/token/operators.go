package token

// Operators lists every symbolic operator, ordered so that each two-character
// operator precedes any one-character operator that is its prefix.
var Operators = []string{
	"++", "--", "&&", "||", "^^", "==", "!=", "<=", ">=", "**",
	"+", "-", "*", "/", "%", "&", "|", "^", "!", "~", "<", ">", "?", ":",
}

// MatchOperator returns the longest operator that prefixes src.
func MatchOperator(src []byte) (string, bool) {
	for _, op := range Operators {
		if len(src) >= len(op) && string(src[:len(op)]) == op {
			return op, true
		}
	}
	return "", false
}

// UnaryOperators are the operators allowed where an operand is expected.
var UnaryOperators = map[string]struct{}{
	"+": {}, "-": {}, "++": {}, "--": {}, "!": {}, "~": {}, "typeof": {},
}

// IsUnary reports whether sym may start a prefix expression.
func IsUnary(sym string) bool {
	_, ok := UnaryOperators[sym]
	return ok
}
