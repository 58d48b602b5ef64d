package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"unsure/internal/diag"
	"unsure/internal/source"
)

type palette struct {
	err, warn, info, loc, caret, note, gutter *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		loc:    mk(color.Bold),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgBlue),
		gutter: mk(color.FgBlue),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   |
//	 3 | let x = (1 + 2;
//	   |         ^~~~~~~
//
// затем notes в том же формате. Ожидается bag.Sort() заранее.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeHeader(w, p, fs, d, opts.PathMode)
		if d.Severity != diag.SevInfo {
			writeSnippet(w, p, fs, d.Primary, int(opts.Context))
		}
		if !opts.ShowNotes && d.Severity != diag.SevInfo {
			continue
		}
		for _, n := range d.Notes {
			if n.Span.Empty() && n.Span.Start == 0 {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
				continue
			}
			start, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), p.loc.Sprintf("%s:%d:%d", formatPath(fs, n.Span.File, opts.PathMode), start.Line, start.Col), n.Msg)
			writeSnippet(w, p, fs, n.Span, 0)
		}
	}
}

func writeHeader(w io.Writer, p palette, fs *source.FileSet, d diag.Diagnostic, mode PathMode) {
	start, _ := fs.Resolve(d.Primary)
	loc := formatPath(fs, d.Primary.File, mode)
	if start.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", loc, start.Line, start.Col)
	}
	sev := p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID())
	fmt.Fprintf(w, "%s: %s: %s\n", p.loc.Sprint(loc), sev, d.Message)
}

// writeSnippet печатает строки вокруг span и подчёркивает его первую строку.
func writeSnippet(w io.Writer, p palette, fs *source.FileSet, span source.Span, context int) {
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	first := max(int(start.Line)-context, 1)
	last := min(int(start.Line)+context, len(f.LineIdx)+1)
	width := len(fmt.Sprint(last))
	bar := p.gutter.Sprint(strings.Repeat(" ", width) + " |")

	fmt.Fprintln(w, bar)
	for n := first; n <= last; n++ {
		line := f.GetLine(uint32(n))
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, n), expandTabs(line))
		if n != int(start.Line) {
			continue
		}
		endCol := int(end.Col)
		if end.Line != start.Line {
			endCol = len(line) + 1
		}
		pad, length := caretExtent(line, int(start.Col), endCol)
		fmt.Fprintf(w, "%s %s%s\n", bar, strings.Repeat(" ", pad), p.caret.Sprint(caret(length)))
	}
}

// caretExtent переводит байтовые колонки в экранные: табы и широкие руны
// занимают больше одной клетки.
func caretExtent(line string, startCol, endCol int) (pad, length int) {
	startCol = min(max(startCol, 1), len(line)+1)
	endCol = min(max(endCol, startCol), len(line)+1)
	pad = displayWidth(line[:startCol-1])
	length = max(displayWidth(line[startCol-1:endCol-1]), 1)
	return pad, length
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func caret(n int) string {
	if n <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", n-1)
}
