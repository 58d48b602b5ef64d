package ast

import (
	"unsure/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent is a bare name.
	ExprIdent ExprKind = iota
	// ExprLit is a string or numeric literal; the payload's LitKind picks the variant.
	ExprLit
	// ExprUnary is a prefix or postfix operator application.
	ExprUnary
	// ExprBinary is an infix operator application.
	ExprBinary
	// ExprTernary is test ? a : b.
	ExprTernary
	// ExprMember is obj.name.
	ExprMember
	// ExprCall is callee(args).
	ExprCall
	// ExprIndex is obj[index].
	ExprIndex
	// ExprSlice is obj[start:stop].
	ExprSlice
	// ExprGeneric is obj<args>. The parser never builds it; the node exists so
	// that later stages can reject it explicitly.
	ExprGeneric
)

var exprKindNames = [...]string{
	ExprIdent:   "Identifier",
	ExprLit:     "Literal",
	ExprUnary:   "UnaryOp",
	ExprBinary:  "BinaryOp",
	ExprTernary: "TernaryConditional",
	ExprMember:  "PropertyAccess",
	ExprCall:    "FunctionCall",
	ExprIndex:   "GetItem",
	ExprSlice:   "GetSlice",
	ExprGeneric: "Generic",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "UnknownExpr"
}

// Expr represents an expression node in the AST. Raw text is File.Text(Span).
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Pos     source.LineCol
	Payload PayloadID
}

// LitKind selects the literal variant.
type LitKind uint8

const (
	LitString LitKind = iota
	LitByte
	LitUnsignedByte
	LitShort
	LitUnsignedShort
	LitInt32
	LitUnsignedInt32
	LitLong
	LitUnsignedLong
	LitBigint
	LitFloat32
	LitDouble
)

var litKindNames = [...]string{
	LitString:        "StringLiteral",
	LitByte:          "ByteLiteral",
	LitUnsignedByte:  "UnsignedByteLiteral",
	LitShort:         "ShortLiteral",
	LitUnsignedShort: "UnsignedShortLiteral",
	LitInt32:         "Int32Literal",
	LitUnsignedInt32: "UnsignedInt32Literal",
	LitLong:          "LongLiteral",
	LitUnsignedLong:  "UnsignedLongLiteral",
	LitBigint:        "BigintLiteral",
	LitFloat32:       "Float32Literal",
	LitDouble:        "DoubleLiteral",
}

func (k LitKind) String() string {
	if int(k) < len(litKindNames) {
		return litKindNames[k]
	}
	return "UnknownLiteral"
}

// IsInteger reports whether k is one of the integer variants.
func (k LitKind) IsInteger() bool { return k >= LitByte && k <= LitBigint }

// IsFloat reports whether k is one of the floating variants.
func (k LitKind) IsFloat() bool { return k == LitFloat32 || k == LitDouble }

type ExprIdentData struct {
	Name string
}

// ExprLiteralData holds the decoded string for LitString and the signed
// digits without suffix for numbers ("-12", "0x1F", "2.5").
type ExprLiteralData struct {
	Kind  LitKind
	Value string
}

type ExprUnaryData struct {
	Op      string
	Operand ExprID
	Postfix bool
}

type ExprBinaryData struct {
	Op    string
	Left  ExprID
	Right ExprID
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprMemberData struct {
	Target ExprID
	Field  string
}

type ExprCallData struct {
	Target ExprID
	Args   []Argument
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

// ExprSliceData: отсутствующая граница — NoExprID.
type ExprSliceData struct {
	Target ExprID
	Start  ExprID
	Stop   ExprID
}

type ExprGenericData struct {
	Target ExprID
	Args   []ExprID
}

// Argument is a call argument or a definition parameter. Call arguments carry
// only Value; parameters carry Name and optionally Type and a default Value.
type Argument struct {
	Span  source.Span
	Pos   source.LineCol
	Name  string
	Type  ExprID
	Value ExprID
}

// IsValueOnly reports whether the argument is a plain positional value.
func (a Argument) IsValueOnly() bool {
	return a.Name == "" && !a.Type.IsValid()
}
