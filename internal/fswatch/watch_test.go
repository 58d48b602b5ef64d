package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCollector(t *testing.T) {
	c := newCollector(".uns")
	if c.add("a.txt", OpWrite) {
		t.Error("foreign extension accepted")
	}
	if c.add("src/.#a.uns", OpWrite) {
		t.Error("hidden file accepted")
	}
	if c.add("a.uns", 0) {
		t.Error("chmod-only event accepted")
	}
	c.add("src/b.uns", OpCreate)
	c.add("src/b.uns", OpWrite)
	c.add("src/a.uns", OpRemove)

	batch := c.flush()
	if len(batch) != 2 {
		t.Fatalf("batch = %+v", batch)
	}
	if batch[0].Path != filepath.Clean("src/a.uns") || !batch[0].Removed() {
		t.Errorf("first = %+v", batch[0])
	}
	if batch[1].Op != OpCreate|OpWrite || batch[1].Removed() {
		t.Errorf("second = %+v", batch[1])
	}
	if c.flush() != nil {
		t.Error("flush must reset pending changes")
	}
}

func TestOpString(t *testing.T) {
	if got := (OpCreate | OpWrite).String(); got != "create|write" {
		t.Errorf("got %q", got)
	}
	if got := Op(0).String(); got != "none" {
		t.Errorf("got %q", got)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	w, err := New(dir, Options{Ext: ".uns", Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer w.Close()
	if got := w.WatchList(); len(got) != 1 {
		t.Errorf("watch list = %v", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go w.Run(ctx)

	target := filepath.Join(dir, "main.uns")
	if err := os.WriteFile(target, []byte("x = 1;"), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case batch, ok := <-w.Batches():
		if !ok {
			t.Fatal("watcher stopped")
		}
		if len(batch) != 1 || batch[0].Path != target {
			t.Errorf("batch = %+v", batch)
		}
	case <-ctx.Done():
		t.Fatal("timeout waiting for a batch")
	}
}
