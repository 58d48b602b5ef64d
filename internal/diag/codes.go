package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003
	LexBadNumber          Code = 1004

	// Парсер выражений
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2002
	SynUnclosedBracket  Code = 2003
	SynUnclosedBrace    Code = 2004
	SynUnbalancedClose  Code = 2005
	SynNotUnary         Code = 2006
	SynMissingOperand   Code = 2007
	SynExtraOperand     Code = 2008
	SynEmptyExpression  Code = 2009
	SynNamedArgument    Code = 2010
	SynBadTernary       Code = 2011
	SynBadSubscript     Code = 2012
	SynExpectIdentifier Code = 2013

	// Парсер инструкций
	SynBadAssignment          Code = 2100
	SynAmbiguousStatement     Code = 2101
	SynConstWithoutValue      Code = 2102
	SynExpectParen            Code = 2103
	SynExpectBrace            Code = 2104
	SynForBadHeader           Code = 2105
	SynNoAssignedMeaning      Code = 2106
	SynInvalidStatementStart  Code = 2107
	SynBadParameter           Code = 2108
	SynReturnOutsideDef       Code = 2109
	SynLoopControlOutsideLoop Code = 2110
	SynBadClassMember         Code = 2111
	SynTrailingTokens         Code = 2112

	// Кодогенерация
	GenInfo            Code = 3000
	GenUnsupportedNode Code = 3001
	GenUnknownOperator Code = 3002
	GenBadLiteral      Code = 3003

	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	PrjManifestError    Code = 5001
	PrjCompilerMismatch Code = 5002
	PrjTimings          Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	LexInfo:                   "Lexical information",
	LexUnknownChar:            "Cannot find token",
	LexUnterminatedString:     "Unterminated string literal",
	LexBadEscape:              "Invalid escape sequence",
	LexBadNumber:              "Malformed number literal",
	SynInfo:                   "Syntax information",
	SynUnexpectedToken:        "Unexpected token",
	SynUnclosedParen:          "Unclosed parenthesis",
	SynUnclosedBracket:        "Unclosed bracket",
	SynUnclosedBrace:          "Unclosed brace",
	SynUnbalancedClose:        "Unbalanced closing delimiter",
	SynNotUnary:               "Operator is not unary",
	SynMissingOperand:         "Missing operand",
	SynExtraOperand:           "Too many operands",
	SynEmptyExpression:        "Empty expression",
	SynNamedArgument:          "Named argument outside a definition",
	SynBadTernary:             "Malformed conditional expression",
	SynBadSubscript:           "Malformed subscript",
	SynExpectIdentifier:       "Expect identifier",
	SynBadAssignment:          "Malformed assignment",
	SynAmbiguousStatement:     "Statement is neither an assignment nor an expression",
	SynConstWithoutValue:      "Constant declared without a value",
	SynExpectParen:            "Expect parenthesis",
	SynExpectBrace:            "Expect brace",
	SynForBadHeader:           "Malformed for-loop header",
	SynNoAssignedMeaning:      "Keyword has no assigned meaning",
	SynInvalidStatementStart:  "Invalid token for start of statement",
	SynBadParameter:           "Malformed parameter",
	SynReturnOutsideDef:       "return outside of def",
	SynLoopControlOutsideLoop: "break/continue outside of a loop",
	SynBadClassMember:         "Invalid class member",
	SynTrailingTokens:         "Unexpected tokens after statement",
	GenInfo:                   "Code generation information",
	GenUnsupportedNode:        "Unsupported node kind",
	GenUnknownOperator:        "Operator has no dispatch key",
	GenBadLiteral:             "Literal cannot be lowered",
	IOLoadFileError:           "I/O load file error",
	IOWriteFileError:          "I/O write file error",
	PrjManifestError:          "Invalid project manifest",
	PrjCompilerMismatch:       "Compiler version does not satisfy the manifest",
	PrjTimings:                "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
