package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"unsure/internal/source"
)

func TestSyntaxErrorMessage(t *testing.T) {
	err := NewSyntaxError(SynNotUnary, source.Span{Start: 3, End: 4}, source.LineCol{Line: 2, Col: 7}, "%q is not unary", "*")
	if got := err.Error(); got != `"*" is not unary at line 2, col 7` {
		t.Errorf("Error() = %q", got)
	}
	d := err.Diagnostic()
	if d.Severity != SevError || d.Code != SynNotUnary || d.Primary.Start != 3 {
		t.Errorf("Diagnostic() = %+v", d)
	}

	wrapped := fmt.Errorf("compile main.uns: %w", err)
	se, ok := AsSyntaxError(wrapped)
	if !ok || se != err {
		t.Fatalf("AsSyntaxError did not unwrap")
	}
	if IsInternal(wrapped) {
		t.Errorf("syntax error must not be internal")
	}
}

func TestInternalErrorIsSeparate(t *testing.T) {
	err := Unreachable("empty slot %d", 1)
	if _, ok := AsSyntaxError(err); ok {
		t.Fatalf("internal error must not be a SyntaxError")
	}
	if !IsInternal(fmt.Errorf("ctx: %w", err)) {
		t.Errorf("IsInternal should see through wrapping")
	}
	if !strings.HasPrefix(err.Error(), "internal compiler error:") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynNotUnary:        "SYN2006",
		GenUnsupportedNode: "GEN3001",
		IOLoadFileError:    "IO4001",
		PrjManifestError:   "PRJ5001",
		Code(9999):         "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unknown code title = %q", Code(1999).Title())
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	bag.Add(NewError(SynMissingOperand, source.Span{Start: 9, End: 10}, "b"))
	bag.Add(NewError(LexBadEscape, source.Span{Start: 1, End: 2}, "a"))
	bag.Add(NewError(LexBadEscape, source.Span{Start: 1, End: 2}, "a"))
	if bag.Add(NewError(UnknownCode, source.Span{}, "overflow")) {
		t.Fatalf("Add past limit must fail")
	}
	bag.Dedup()
	bag.Sort()
	items := bag.Items()
	if len(items) != 2 || items[0].Message != "a" || items[1].Message != "b" {
		t.Fatalf("items = %+v", items)
	}

	other := NewBag(5)
	other.Add(New(SevWarning, UnknownCode, source.Span{}, "w"))
	other.Add(New(SevInfo, PrjTimings, source.Span{}, "i"))
	bag.Merge(other)
	if bag.Len() != 4 || !bag.HasWarnings() || !bag.HasErrors() {
		t.Errorf("merge result: len=%d", bag.Len())
	}
}

func TestReportErr(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	ReportErr(r, NewSyntaxError(LexUnterminatedString, source.Span{Start: 4, End: 5}, source.LineCol{Line: 1, Col: 5}, "unterminated string"), UnknownCode)
	ReportErr(r, errors.New("disk on fire"), IOLoadFileError)
	ReportErr(r, nil, IOLoadFileError)

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics", len(items))
	}
	if items[0].Code != LexUnterminatedString || items[0].Primary.Start != 4 {
		t.Errorf("syntax error not preserved: %+v", items[0])
	}
	if items[1].Code != IOLoadFileError {
		t.Errorf("fallback code not used: %+v", items[1])
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/proj")
	a := fs.AddVirtual("b.uns", []byte("x\nlet y = ;"))
	b := fs.AddVirtual("a.uns", []byte("@"))
	diags := []Diagnostic{
		NewError(SynMissingOperand, source.Span{File: a, Start: 10, End: 11}, "missing operand").
			WithNote(source.Span{File: a, Start: 2, End: 5}, "statement starts here"),
		NewError(LexUnknownChar, source.Span{File: b, Start: 0, End: 1}, "cannot find token"),
	}
	got := FormatShort(diags, fs, true)
	want := "a.uns:1:1: ERROR LEX1001: cannot find token\n" +
		"b.uns:2:9: ERROR SYN2007: missing operand\n" +
		"  note: statement starts here\n"
	if got != want {
		t.Errorf("FormatShort =\n%s\nwant\n%s", got, want)
	}

	var report ReportBuilder
	report.Emit() // nil reporter: no panic
}
