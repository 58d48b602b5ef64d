package parser

// Таблица приоритетов бинарных операторов.
// Чем больше число, тем выше приоритет.
const (
	precBoolean    = 1 // && || ^^
	precComparison = 2 // == != < <= > >=
	precRelation   = 3 // extends instanceof subclassof
	precBitwise    = 4 // & | ^
	precAdditive   = 5 // + -
	precMultiply   = 6 // * / %
	precPower      = 7 // **
)

var binaryPrec = map[string]int{
	"&&": precBoolean, "||": precBoolean, "^^": precBoolean,
	"==": precComparison, "!=": precComparison,
	"<": precComparison, "<=": precComparison, ">": precComparison, ">=": precComparison,
	"extends": precRelation, "instanceof": precRelation, "subclassof": precRelation,
	"&": precBitwise, "|": precBitwise, "^": precBitwise,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiply, "/": precMultiply, "%": precMultiply,
	"**": precPower,
}

// binaryPrecedence returns the level of op, or -1 if op is not binary.
func binaryPrecedence(op string) int {
	if prec, ok := binaryPrec[op]; ok {
		return prec
	}
	return -1
}
