// Package fswatch reports debounced batches of changed source files under a
// directory tree.
package fswatch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a bit set of what happened to a path inside one batch.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	var parts []string
	for _, f := range []struct {
		bit  Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}} {
		if op&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Change is one path with the union of its operations.
type Change struct {
	Path string
	Op   Op
}

// Removed reports whether the file is gone after the batch.
func (c Change) Removed() bool { return c.Op&(OpRemove|OpRename) != 0 && c.Op&(OpCreate|OpWrite) == 0 }

// Options configures a Watcher.
type Options struct {
	Ext      string        // only paths with this extension are reported; "" reports all
	Debounce time.Duration // quiet period before a batch is emitted
}

// Watcher watches a directory tree recursively.
type Watcher struct {
	root string
	opts Options
	w    *fsnotify.Watcher

	batches chan []Change
	errs    chan error
}

// New starts watching root and every non-hidden subdirectory.
func New(root string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{
		root:    root,
		opts:    opts,
		w:       w,
		batches: make(chan []Change, 8),
		errs:    make(chan error, 8),
	}
	if err := fw.addTree(root); err != nil {
		_ = w.Close()
		return nil, err
	}
	return fw, nil
}

// Batches delivers debounced changes, sorted by path. Closed when Run returns.
func (fw *Watcher) Batches() <-chan []Change { return fw.batches }

func (fw *Watcher) Errors() <-chan error { return fw.errs }

func (fw *Watcher) Close() error { return fw.w.Close() }

// WatchList returns the directories currently registered.
func (fw *Watcher) WatchList() []string {
	list := fw.w.WatchList()
	sort.Strings(list)
	return list
}

func (fw *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.w.Add(path)
	})
}

// Run pumps fsnotify events until ctx is done or the watcher is closed.
func (fw *Watcher) Run(ctx context.Context) {
	defer close(fw.batches)
	pending := newCollector(fw.opts.Ext)
	timer := time.NewTimer(fw.opts.Debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			// новые каталоги подхватываем сразу, иначе файлы в них не увидим
			if ev.Op&fsnotify.Create != 0 && isDir(ev.Name) {
				if err := fw.addTree(ev.Name); err != nil {
					fw.reportErr(err)
				}
				continue
			}
			if pending.add(ev.Name, convertOp(ev.Op)) {
				timer.Reset(fw.opts.Debounce)
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.reportErr(err)
		case <-timer.C:
			if batch := pending.flush(); len(batch) > 0 {
				select {
				case fw.batches <- batch:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (fw *Watcher) reportErr(err error) {
	select {
	case fw.errs <- err:
	default:
		// никто не читает ошибки; теряем
	}
}

func convertOp(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	return out
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// collector merges events per path between flushes.
type collector struct {
	ext     string
	pending map[string]Op
}

func newCollector(ext string) *collector {
	return &collector{ext: ext, pending: make(map[string]Op)}
}

// add records op for path and reports whether the path is relevant.
func (c *collector) add(path string, op Op) bool {
	if op == 0 {
		return false // chmod
	}
	if c.ext != "" && filepath.Ext(path) != c.ext {
		return false
	}
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	c.pending[filepath.Clean(path)] |= op
	return true
}

func (c *collector) flush() []Change {
	if len(c.pending) == 0 {
		return nil
	}
	out := make([]Change, 0, len(c.pending))
	for path, op := range c.pending {
		out = append(out, Change{Path: path, Op: op})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	clear(c.pending)
	return out
}
