// Package token defines the lexical vocabulary of the unsure language.
// Invariants:
//   - Token.Text is the exact source slice; concatenating Text of every token
//     (whitespace included) reproduces the input.
//   - Token.Span covers Text exactly; Token.Pos is the 1-based position of Span.Start.
//   - Keywords are case-sensitive. Word operators (typeof, extends, instanceof,
//     subclassof) are lexed as Keyword tokens and classified by OperatorSymbol.
package token
