// Package watch runs the reconciler continuously against a project
// tree, triggering on filesystem write events instead of editor
// hooks. Each event still goes through the normal single-trigger,
// single-pair reconcile; the idempotence guard suppresses the event
// caused by our own counterpart write.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rjeczalik/notify"

	"github.com/alexandrbasis/claude-agents-sync/internal/logging"
	"github.com/alexandrbasis/claude-agents-sync/internal/pair"
	"github.com/alexandrbasis/claude-agents-sync/internal/reconcile"
)

// Syncer is the subset of the reconciler watch needs; tests stub it.
type Syncer interface {
	Sync(triggerPath string) *reconcile.Result
}

// Watcher drives the reconciler from filesystem events.
type Watcher struct {
	root     string
	syncer   Syncer
	debounce time.Duration
	events   chan notify.EventInfo

	// OnResult, when set, observes every non-no-op reconcile result.
	OnResult func(*reconcile.Result)
}

// New creates a Watcher for the tree rooted at root.
func New(root string, syncer Syncer, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		root:     root,
		syncer:   syncer,
		debounce: debounce,
		events:   make(chan notify.EventInfo, 64),
	}
}

// Run watches until the context is canceled. Write and create events
// on instruction files are debounced per path and handed to the
// reconciler.
func (w *Watcher) Run(ctx context.Context) error {
	recursive := filepath.Join(w.root, "...")
	if err := notify.Watch(recursive, w.events, notify.Write|notify.Create|notify.Rename); err != nil {
		return err
	}
	defer notify.Stop(w.events)

	logging.Info("watching for instruction file edits", logging.Path(w.root))

	pending := make(map[string]*time.Timer)
	fired := make(chan string, 64)

	for {
		select {
		case <-ctx.Done():
			for _, timer := range pending {
				timer.Stop()
			}
			return ctx.Err()

		case ev := <-w.events:
			path := ev.Path()
			if !isInstructionFile(path) {
				continue
			}
			logging.Debug("instruction file event",
				logging.Path(path),
				logging.Trigger(ev.Event().String()),
			)
			// Debounce per path: editors fire several notifications
			// for one save.
			if timer, ok := pending[path]; ok {
				timer.Reset(w.debounce)
				continue
			}
			p := path
			pending[p] = time.AfterFunc(w.debounce, func() {
				fired <- p
			})

		case path := <-fired:
			delete(pending, path)
			w.reconcileOne(path)
		}
	}
}

func (w *Watcher) reconcileOne(path string) {
	result := w.syncer.Sync(path)
	if result.Outcome == reconcile.OutcomeError {
		logging.Error("reconcile failed",
			logging.Trigger(path),
			logging.Err(result.Err),
		)
	}
	if w.OnResult != nil && !result.NoOp() {
		w.OnResult(result)
	}
}

// isInstructionFile gates events before any discovery work.
func isInstructionFile(path string) bool {
	base := filepath.Base(path)
	return base == pair.PrimaryName || base == pair.SecondaryName
}
