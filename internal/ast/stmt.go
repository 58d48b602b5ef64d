package ast

import (
	"unsure/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtAssign
	StmtTypedAssign
	StmtIf
	StmtFor
	StmtWhile
	StmtDef
	StmtClass
	StmtReturn
	StmtBreak
	StmtContinue
)

var stmtKindNames = [...]string{
	StmtExpr:        "ExpressionStatement",
	StmtAssign:      "Assignment",
	StmtTypedAssign: "TypedAssignment",
	StmtIf:          "IfStatement",
	StmtFor:         "ForLoop",
	StmtWhile:       "WhileLoop",
	StmtDef:         "FunctionDefinition",
	StmtClass:       "ClassDefinition",
	StmtReturn:      "Return",
	StmtBreak:       "Break",
	StmtContinue:    "Continue",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "UnknownStmt"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Pos     source.LineCol
	Payload PayloadID
}

type StmtExprData struct {
	Expr ExprID
}

// StmtAssignData: Declare=false — переприсваивание, Target тогда может быть
// PropertyAccess, GetItem или GetSlice. Value может отсутствовать у let.
type StmtAssignData struct {
	Declare bool
	Const   bool
	Target  ExprID
	Value   ExprID
}

// StmtTypedAssignData is `[let|const] Type name [= value]`.
type StmtTypedAssignData struct {
	Type   ExprID
	Const  bool
	Target ExprID
	Value  ExprID
}

type StmtIfData struct {
	Cond ExprID
	Then []StmtID
	// Else is empty without an else branch; `else if` nests one StmtIf here.
	Else []StmtID
}

// StmtForData: любой из трёх заголовков может быть пустым.
type StmtForData struct {
	Init StmtID
	Cond ExprID
	Post StmtID
	Body []StmtID
}

type StmtWhileData struct {
	Cond ExprID
	Body []StmtID
}

type StmtDefData struct {
	Name   string
	Params []Argument
	Body   []StmtID
}

type StmtClassData struct {
	Name  string
	Bases []ExprID
	Body  []StmtID
}

type StmtReturnData struct {
	Value ExprID
}
