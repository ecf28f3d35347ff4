// Package loader provides functionality for reading TXXT source — from
// a file or stdin — and running it through the parsing pipeline, plus a
// fsnotify-backed Watch mode that re-parses a file on every save.
//
// Example usage:
//
//	ldr := loader.New()
//	doc, err := ldr.Load(ctx, "notes.txxt")
//
//	ldr.Watch(ctx, "notes.txxt", func(doc *ast.Document, err error) {
//		// re-run on every save
//	})
package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/parser"
	"github.com/txxtlang/txxt/telemetry"
)

// Loader reads TXXT source and runs it through the parsing pipeline.
// TXXT has no include directive, so unlike the teacher's loader this
// one never recurses across files. It has no options of its own; the
// parse is timed as a named telemetry span when ctx carries a collector.
type Loader struct{}

// Option configures a Loader.
type Option func(*Loader)

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads filename and parses it.
func (l *Loader) Load(ctx context.Context, filename string) (*ast.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses source that has already been read, under the given
// filename (used only to stamp positions and diagnostics).
func (l *Loader) LoadBytes(ctx context.Context, filename string, source []byte) (*ast.Document, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("parse %s", filename))
	defer timer.End()

	return parser.Parse(source, filename)
}

// WatchFunc receives the result of each parse triggered by Watch: doc is
// always non-nil when err is nil, carrying its own Diagnostics.
type WatchFunc func(doc *ast.Document, err error)

// Watch parses filename immediately, then again every time fsnotify
// reports a write to it, until ctx is canceled. Editors save by
// truncate-then-write or rename-into-place depending on platform and
// tool, so both Write and Create events trigger a re-parse.
func (l *Loader) Watch(ctx context.Context, filename string, fn WatchFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}

	reload := func() {
		doc, err := l.Load(ctx, filename)
		fn(doc, err)
	}

	reload()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watch error: %w", err))
		}
	}
}
