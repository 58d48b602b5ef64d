package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"unsure/internal/codegen"
	"unsure/internal/diag"
	"unsure/internal/trace"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileString(t *testing.T) {
	out, err := CompileString("x = 1;", codegen.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "$x=bigint(1n)") {
		t.Errorf("output = %q", out)
	}
}

func TestCompileStringSyntaxError(t *testing.T) {
	_, err := CompileString("x = 'abc", codegen.DefaultOptions())
	se, ok := diag.AsSyntaxError(err)
	if !ok {
		t.Fatalf("err = %v", err)
	}
	if se.Line != 1 || se.Col != 5 || se.Code != diag.LexUnterminatedString {
		t.Errorf("got %s at %d:%d", se.Code.ID(), se.Line, se.Col)
	}
}

func TestTokenizeStringIsLossless(t *testing.T) {
	src := "let s = 'a\\n';\n  if (x) { y++; }\n"
	toks, err := TokenizeString(src)
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.Text)
	}
	if sb.String() != src {
		t.Errorf("concatenation = %q", sb.String())
	}
}

func TestParseStringFusesIfElse(t *testing.T) {
	prog, err := ParseString("if (x) { a(); } else { b(); }")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Statements) != 1 {
		t.Errorf("statements = %d", len(prog.Statements))
	}
}

func TestCompileFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.uns", "def sq(x) { return x * x; }\nprint(sq(4));\n")
	res, err := Compile(context.Background(), path, CompileOptions{Codegen: codegen.DefaultOptions(), EnableTimings: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	if !strings.Contains(res.Output, `const $sq=func(function($x){return $x[s.mul]($x)},"sq")`) {
		t.Errorf("output = %q", res.Output)
	}
	if res.Program == nil || res.Timing == nil || len(res.Timing.Phases) != 3 {
		t.Errorf("program = %v, timing = %+v", res.Program, res.Timing)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.PrjTimings {
		t.Errorf("bag = %+v", items)
	}
}

func TestCompileFileSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.uns", "x = 1;\ny = (2;\n")
	res, err := Compile(context.Background(), path, CompileOptions{Codegen: codegen.DefaultOptions()})
	if err != nil {
		t.Fatalf("syntax errors must not be returned: %v", err)
	}
	if res.Output != "" || !res.Bag.HasErrors() {
		t.Fatalf("output = %q, bag = %+v", res.Output, res.Bag.Items())
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.SynUnclosedParen {
		t.Errorf("code = %s", d.Code.ID())
	}
	if pos := res.File.Position(d.Primary.Start); pos.Line != 2 || pos.Col != 5 {
		t.Errorf("position = %v", pos)
	}
}

func TestCompileSource(t *testing.T) {
	res, err := CompileSource(context.Background(), "", "let a = (1;", CompileOptions{Codegen: codegen.DefaultOptions()})
	if err != nil {
		t.Fatal(err)
	}
	if res.File.Path != "<input>" || !res.Bag.HasErrors() {
		t.Fatalf("path = %q, bag = %+v", res.File.Path, res.Bag.Items())
	}

	res, err = CompileSource(context.Background(), "snippet", "print('hi');", CompileOptions{Codegen: codegen.DefaultOptions()})
	if err != nil || res.Bag.HasErrors() {
		t.Fatalf("err = %v, bag = %+v", err, res.Bag.Items())
	}
	if !strings.Contains(res.Output, `$print[s.call](string("hi"))`) {
		t.Errorf("output = %q", res.Output)
	}
}

func TestCompileMissingFile(t *testing.T) {
	if _, err := Compile(context.Background(), filepath.Join(t.TempDir(), "nope.uns"), CompileOptions{}); err == nil {
		t.Error("expected an I/O error")
	}
}

func TestCompileUsesCache(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "a.uns", "x = 1;")
	opts := CompileOptions{Codegen: codegen.DefaultOptions(), Cache: cache}

	first, err := Compile(context.Background(), path, opts)
	if err != nil || first.Cached {
		t.Fatalf("first: cached=%v err=%v", first.Cached, err)
	}
	second, err := Compile(context.Background(), path, opts)
	if err != nil || !second.Cached {
		t.Fatalf("second: cached=%v err=%v", second.Cached, err)
	}
	if first.Output != second.Output {
		t.Errorf("cached output differs")
	}

	opts.Codegen.Debug = false
	third, err := Compile(context.Background(), path, opts)
	if err != nil || third.Cached {
		t.Errorf("options change must miss: cached=%v err=%v", third.Cached, err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey([32]byte{1}, codegen.DefaultOptions())
	if err := cache.Put(key, &DiskPayload{Output: "js"}); err != nil {
		t.Fatal(err)
	}
	var got DiskPayload
	if ok, err := cache.Get(key, &got); !ok || err != nil || got.Output != "js" {
		t.Fatalf("get = %v %v %+v", ok, err, got)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &got); ok {
		t.Error("entry survived DropAll")
	}
	var nilCache *DiskCache
	if ok, err := nilCache.Get(key, &got); ok || err != nil {
		t.Error("nil cache must miss silently")
	}
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.uns", "x = 1;")
	writeFile(t, dir, "bad.uns", "x = ;")
	writeFile(t, dir, "sub/b.uns", "y = 2;")
	writeFile(t, dir, ".hidden/c.uns", "z = 3;")
	writeFile(t, dir, "notes.txt", "not source")

	var (
		mu     sync.Mutex
		events []FileEvent
	)
	opts := CompileOptions{
		Codegen: codegen.DefaultOptions(),
		Jobs:    2,
		Observer: func(ev FileEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, ev)
		},
	}
	_, results, err := CompileDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	wantNames := []string{"a.uns", "bad.uns", filepath.Join("sub", "b.uns")}
	for i, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		if rel != wantNames[i] {
			t.Errorf("result %d = %s", i, rel)
		}
	}
	if results[0].Output == "" || results[0].Bag.HasErrors() {
		t.Errorf("a.uns: %+v", results[0])
	}
	if results[1].Output != "" || !results[1].Bag.HasErrors() {
		t.Errorf("bad.uns must fail: %+v", results[1].Bag.Items())
	}

	failed := 0
	for _, ev := range events {
		if ev.Status == FileFailed {
			failed++
		}
	}
	if len(events) != 16 || failed != 1 {
		t.Errorf("events = %d, failed = %d", len(events), failed)
	}
}

func TestTokenizeAndParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.uns", "x = 1;")
	writeFile(t, dir, "b.uns", "y = 'oops")

	_, toks, err := TokenizeDir(context.Background(), dir, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 || toks[0].Bag.HasErrors() || !toks[1].Bag.HasErrors() {
		t.Fatalf("tokenize results = %+v", toks)
	}
	if last := toks[0].Tokens[len(toks[0].Tokens)-1]; last.Kind.String() != "EOF" {
		t.Errorf("last token = %s", last.Kind)
	}

	_, parsed, err := ParseDir(context.Background(), dir, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if parsed[0].Program == nil || parsed[1].Program != nil {
		t.Errorf("parse results = %+v", parsed)
	}
}

func TestCompileEmitsTrace(t *testing.T) {
	var buf bytes.Buffer
	tracer, err := trace.New(trace.Config{Level: trace.LevelDebug, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "a.uns", "x = 1;")
	ctx := trace.WithTracer(context.Background(), tracer)
	if _, err := Compile(ctx, path, CompileOptions{Codegen: codegen.DefaultOptions()}); err != nil {
		t.Fatal(err)
	}
	if err := tracer.Flush(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"→ compile", "← lex (", "← parse (1 statements)", "← codegen ("} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("trace misses %q:\n%s", name, buf.String())
		}
	}
}
