package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"unsure/internal/source"
)

// Cursor — позиция в файле вместе с номером строки и началом текущей строки.
// Колонка считается от последнего пройденного '\n', поэтому токены, которые
// сами содержат перевод строки (многострочные строки), оставляют курсор в
// правильной колонке.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32

	line      uint32
	lineStart uint32
}

// NewCursor creates a cursor at the first byte of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit, line: 1}
}

// EOF reports whether every byte was consumed.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Rest returns the unread input.
func (c *Cursor) Rest() []byte {
	return c.File.Content[c.Off:c.Limit]
}

// Bump consumes one byte and updates line bookkeeping.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	if b == '\n' {
		c.line++
		c.lineStart = c.Off
	}
	return b
}

// BumpN consumes n bytes.
func (c *Cursor) BumpN(n int) {
	for i := 0; i < n; i++ {
		c.Bump()
	}
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() == b && !c.EOF() {
		c.Bump()
		return true
	}
	return false
}

// Pos returns the 1-based line/column of the current byte.
func (c *Cursor) Pos() source.LineCol {
	return source.LineCol{Line: c.line, Col: c.Off - c.lineStart + 1}
}

// Mark is a saved cursor state.
type Mark struct {
	off       uint32
	line      uint32
	lineStart uint32
}

// Mark saves the current state.
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, line: c.line, lineStart: c.lineStart}
}

// SpanFrom returns the span from m to the current offset.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: m.off, End: c.Off}
}

// PosOf returns the line/column saved in m.
func (m Mark) PosOf() source.LineCol {
	return source.LineCol{Line: m.line, Col: m.off - m.lineStart + 1}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) {
	c.Off, c.line, c.lineStart = m.off, m.line, m.lineStart
}
