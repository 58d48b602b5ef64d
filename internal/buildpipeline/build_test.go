package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"unsure/internal/codegen"
	"unsure/internal/driver"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(status Status) int {
	n := 0
	for _, ev := range r.events {
		if ev.Status == status {
			n++
		}
	}
	return n
}

func TestBuildWritesOutputs(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	write(t, src, "main.uns", "x = 1;")
	write(t, src, "lib/util.uns", "def id(v) { return v; }")

	rec := &recorder{}
	res, err := Build(context.Background(), &BuildRequest{
		SrcDir:   src,
		OutDir:   out,
		Compile:  driver.CompileOptions{Codegen: codegen.DefaultOptions()},
		Progress: rec,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 2 || res.Files[0].Path != "lib/util.uns" || res.Files[1].Path != "main.uns" {
		t.Fatalf("files = %+v", res.Files)
	}
	data, err := os.ReadFile(filepath.Join(out, "lib", "util.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `const $id=func(`) {
		t.Errorf("util.js = %s", data)
	}
	if rec.count(StatusQueued) != 2 || rec.count(StatusDone) != 3 {
		t.Errorf("events = %+v", rec.events)
	}
	if !res.Timings.Has(StageParse) || !res.Timings.Has(StageWrite) {
		t.Error("stage timings missing")
	}
}

func TestBuildReportsFailures(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	write(t, src, "ok.uns", "x = 1;")
	write(t, src, "broken.uns", "x = (1;")

	res, err := Build(context.Background(), &BuildRequest{SrcDir: src, OutDir: out, OutExt: ".mjs"})
	if !errors.Is(err, ErrBuildFailed) {
		t.Fatalf("err = %v", err)
	}
	if res.Failed != 1 {
		t.Errorf("failed = %d", res.Failed)
	}
	if _, err := os.Stat(filepath.Join(out, "ok.mjs")); err != nil {
		t.Errorf("ok.mjs not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "broken.mjs")); !os.IsNotExist(err) {
		t.Errorf("broken.mjs must not exist: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("dist", "lib/a.uns", ".js")
	if want := filepath.Join("dist", "lib", "a.js"); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
}

func TestDisplayFiles(t *testing.T) {
	got := DisplayFiles([]string{filepath.Join("src", "a.uns"), filepath.Join("other", "b.uns")}, "src")
	if got[0] != "a.uns" || got[1] != "other/b.uns" {
		t.Errorf("DisplayFiles = %v", got)
	}
}
