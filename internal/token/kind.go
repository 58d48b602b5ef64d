package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks the zero value; the lexer never emits it.
	Invalid Kind = iota
	// EOF terminates every token stream.
	EOF

	// Space is a run of blanks, tabs or carriage returns.
	Space
	// Newline is a single '\n'.
	Newline

	Semicolon // ;
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Period    // .
	Comma     // ,
	Equals    // =

	// StringLit carries the decoded value in Token.Value.
	StringLit
	// NumberLit carries the signed mantissa in Token.Value and the suffix in Token.Flag.
	NumberLit
	// Keyword carries the keyword in Token.Value.
	Keyword
	// Operator carries the symbol in Token.Value.
	Operator
	// Ident carries the name in Token.Value.
	Ident
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Space:     "Space",
	Newline:   "Newline",
	Semicolon: "Semicolon",
	LParen:    "LeftParen",
	RParen:    "RightParen",
	LBracket:  "LeftBracket",
	RBracket:  "RightBracket",
	LBrace:    "LeftBrace",
	RBrace:    "RightBrace",
	Period:    "Period",
	Comma:     "Comma",
	Equals:    "Equals",
	StringLit: "StringLiteral",
	NumberLit: "NumberLiteral",
	Keyword:   "Keyword",
	Operator:  "Operator",
	Ident:     "Identifier",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// punctuators maps the single-byte structural characters to their kinds.
var punctuators = map[byte]Kind{
	';': Semicolon,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'{': LBrace,
	'}': RBrace,
	'.': Period,
	',': Comma,
	'=': Equals,
}

// LookupPunct returns the structural kind for b.
func LookupPunct(b byte) (Kind, bool) {
	k, ok := punctuators[b]
	return k, ok
}
