// Package watch re-parses C# files as they change on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/orizon-lang/csfront/internal/cli"
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/parser"
)

// Op is the kind of change that triggered a parse.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	var parts []string
	for _, n := range []struct {
		op   Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}} {
		if op&n.op != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Event reports the parse of one changed file. Result is nil when the
// file was removed or could not be read; Err says why.
type Event struct {
	Path   string
	Op     Op
	Result *parser.Result
	Err    error
}

// Options configures a Watcher.
type Options struct {
	// Debounce is how long a file must stay quiet before it is parsed.
	Debounce time.Duration
	// Match selects the files to parse; nil matches ".cs" files.
	Match func(path string) bool
	// ParseOptions are passed to every parse.
	ParseOptions []parser.Option
	// Logger receives debug output; nil disables logging.
	Logger *cli.Logger
}

// Watcher watches directory trees and re-parses matching files.
type Watcher struct {
	fw   *fsnotify.Watcher
	opts Options
}

// New creates a watcher over roots and their subdirectories.
func New(roots []string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	if opts.Match == nil {
		opts.Match = func(path string) bool { return strings.EqualFold(filepath.Ext(path), ".cs") }
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fw: fw, opts: opts}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree registers root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.ReadFailure(path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		w.debug("watching %s", path)
		return w.fw.Add(path)
	})
}

func (w *Watcher) debug(format string, args ...interface{}) {
	if w.opts.Logger != nil {
		w.opts.Logger.Debug(format, args...)
	}
}

// Close stops watching.
func (w *Watcher) Close() error { return w.fw.Close() }

type pending struct {
	op   Op
	last time.Time
}

// Run delivers an Event to handle for every settled change until ctx is
// done or the underlying watcher fails. handle runs on the Run goroutine.
func (w *Watcher) Run(ctx context.Context, handle func(Event)) error {
	queue := make(map[string]*pending)
	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func(d time.Duration) {
		if timer == nil {
			timer = time.NewTimer(d)
		} else {
			timer.Reset(d)
		}
		fire = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			op := convert(ev.Op)
			if op == 0 {
				continue
			}
			if op&OpCreate != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.debug("cannot watch %s: %v", ev.Name, err)
					}
					continue
				}
			}
			if !w.opts.Match(ev.Name) {
				continue
			}
			p := queue[ev.Name]
			if p == nil {
				p = &pending{}
				queue[ev.Name] = p
			}
			p.op |= op
			p.last = time.Now()
			if fire == nil {
				schedule(w.opts.Debounce)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			return err

		case now := <-fire:
			fire = nil
			var wait time.Duration
			for path, p := range queue {
				if age := now.Sub(p.last); age < w.opts.Debounce {
					wait = max(wait, w.opts.Debounce-age)
					continue
				}
				delete(queue, path)
				handle(w.parse(path, p.op))
			}
			if len(queue) > 0 {
				schedule(max(wait, time.Millisecond))
			}
		}
	}
}

func convert(op fsnotify.Op) Op {
	var out Op
	if op&fsnotify.Create != 0 {
		out |= OpCreate
	}
	if op&fsnotify.Write != 0 {
		out |= OpWrite
	}
	if op&fsnotify.Remove != 0 {
		out |= OpRemove
	}
	if op&fsnotify.Rename != 0 {
		out |= OpRename
	}
	return out
}

func (w *Watcher) parse(path string, op Op) Event {
	ev := Event{Path: path, Op: op}
	content, err := os.ReadFile(path)
	if err != nil {
		if op&(OpRemove|OpRename) == 0 || !os.IsNotExist(err) {
			ev.Err = errors.ReadFailure(path, err)
		}
		return ev
	}
	w.debug("parsing %s (%s)", path, op)
	ev.Result, ev.Err = parser.ParseFile(path, string(content), w.opts.ParseOptions...)
	return ev
}
