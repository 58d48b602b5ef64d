package token

var keywords = map[string]struct{}{
	"let": {}, "const": {}, "if": {}, "else": {}, "for": {}, "while": {}, "return": {},
	"def": {}, "in": {}, "typeof": {}, "extends": {}, "instanceof": {}, "subclassof": {},
	"type": {}, "interface": {}, "use": {}, "class": {}, "break": {}, "continue": {},
	"async": {}, "await": {}, "yield": {}, "switch": {}, "case": {}, "throw": {},
	"try": {}, "catch": {}, "finally": {}, "enum": {}, "super": {}, "abstract": {},
}

// IsKeyword сообщает, зарезервировано ли слово. Регистр важен.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

var wordOperators = map[string]struct{}{
	"typeof": {}, "extends": {}, "instanceof": {}, "subclassof": {},
}

// IsWordOperator reports whether the keyword word acts as an operator.
func IsWordOperator(word string) bool {
	_, ok := wordOperators[word]
	return ok
}
