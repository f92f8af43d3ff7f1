// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pour

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/lessonpour/pkg/types"
)

// watchSettle is how long a file must stay quiet after its last
// Create/Write event before it is poured. Creation and the writes that
// follow arrive as separate events; pouring on the first one would read
// a half-written file.
const watchSettle = 500 * time.Millisecond

// Watch observes dir and re-pours a JSON file whenever it is created or
// written, once its events have settled. It blocks until ctx is
// cancelled. Per-file failures are reported on w and watching continues.
func Watch(ctx context.Context, dir string, cfg types.PourConfig, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	fmt.Fprintf(w, "watching %s for changes\n", dir)

	// pending holds the settle timer per path; a new event on the same
	// path restarts its timer, coalescing the create-then-write burst
	// into one pour.
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()
	settled := make(chan string)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-settled:
			delete(pending, path)
			if _, err := PourFile(path, cfg, w); err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", filepath.Base(path), err)
			}
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".json") {
				continue
			}
			path := ev.Name
			if t, ok := pending[path]; ok {
				t.Stop()
			}
			pending[path] = time.AfterFunc(watchSettle, func() {
				select {
				case settled <- path:
				case <-ctx.Done():
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "watch error: %v\n", err)
		}
	}
}
