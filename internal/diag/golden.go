package diag

import (
	"fmt"
	"sort"
	"strings"

	"unsure/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders one line per diagnostic:
//
//	path:line:col: SEVERITY CODE: message
//
// Lines are sorted by path and position so the output is stable across
// parallel runs. Notes are appended as indented "note:" lines when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rendered := make([]shortDiagnostic, 0, len(diags))
	notes := make(map[int][]string)
	for _, d := range diags {
		rendered = append(rendered, toShort(d.Severity.String(), d.Code.ID(), d.Primary, d.Message, fs))
		if includeNotes {
			for _, n := range d.Notes {
				notes[len(rendered)-1] = append(notes[len(rendered)-1], n.Msg)
			}
		}
	}

	order := make([]int, len(rendered))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		di, dj := rendered[order[a]], rendered[order[b]]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var sb strings.Builder
	for _, idx := range order {
		d := rendered[idx]
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", d.Path, d.Line, d.Column, d.Severity, d.Code, d.Message)
		for _, n := range notes[idx] {
			fmt.Fprintf(&sb, "  note: %s\n", n)
		}
	}
	return sb.String()
}

func toShort(sev, code string, span source.Span, msg string, fs *source.FileSet) shortDiagnostic {
	out := shortDiagnostic{Severity: sev, Code: code, Message: msg, Path: "<unknown>"}
	f := fs.Get(span.File)
	if f == nil {
		return out
	}
	out.Path = f.FormatPath("relative", fs.BaseDir())
	pos := f.Position(span.Start)
	out.Line, out.Column = pos.Line, pos.Col
	return out
}
