// Package reconcile propagates edits between the two files of an
// instruction pair. Given one trigger path it locates the pair,
// compares normalized contents, and copies the trigger's raw bytes to
// the counterpart if and only if they differ. Direction always follows
// the trigger; modification timestamps are never consulted.
package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexandrbasis/claude-agents-sync/internal/logging"
	"github.com/alexandrbasis/claude-agents-sync/internal/pair"
)

// Reconciler performs single-trigger, single-pair synchronization.
// Instances hold no mutable state and are safe for concurrent use on
// distinct pairs; concurrent invocations on the same pair fall through
// the idempotence guard.
type Reconciler struct {
	syncLog logging.SyncLog
}

// New creates a Reconciler that discards sync-log records.
func New() *Reconciler {
	return &Reconciler{syncLog: logging.Discard}
}

// NewWithSyncLog creates a Reconciler reporting every invocation
// outcome to the given sync log.
func NewWithSyncLog(sl logging.SyncLog) *Reconciler {
	if sl == nil {
		sl = logging.Discard
	}
	return &Reconciler{syncLog: sl}
}

// Sync reconciles the pair owning triggerPath. The trigger file is
// never modified; at most one write (the counterpart) occurs per
// invocation. All outcomes, no-ops included, are reported to the sync
// log.
func (r *Reconciler) Sync(triggerPath string) *Result {
	result := r.sync(triggerPath)
	r.record(result)
	return result
}

func (r *Reconciler) sync(triggerPath string) *Result {
	logging.Debug("reconcile triggered", logging.Trigger(triggerPath))

	// Cheap gate before any discovery: only the two instruction file
	// names can ever belong to a pair.
	base := filepath.Base(triggerPath)
	if base != pair.PrimaryName && base != pair.SecondaryName {
		return &Result{
			Outcome:     OutcomeNoMatchingPair,
			TriggerPath: triggerPath,
			Detail:      "not an instruction file",
		}
	}

	trigger := pair.Resolve(triggerPath)

	p, ok := pair.PairAt(filepath.Dir(trigger))
	if !ok {
		logging.Debug("no qualifying pair", logging.Trigger(trigger))
		return &Result{
			Outcome:     OutcomeNoMatchingPair,
			TriggerPath: trigger,
		}
	}

	counterpart, ok := p.Counterpart(trigger)
	if !ok {
		// Discovery found a pair in this directory but the trigger is
		// neither of its files (racing rename or symlink oddity).
		logging.Debug("trigger matches neither pair file",
			logging.Trigger(trigger),
			logging.Pair(p.Dir),
		)
		return &Result{
			Pair:        p,
			Outcome:     OutcomeAmbiguousTrigger,
			TriggerPath: trigger,
		}
	}

	result := &Result{
		Pair:            p,
		TriggerPath:     trigger,
		CounterpartPath: counterpart,
	}

	triggerData, err := os.ReadFile(trigger) // #nosec G304 - path verified against the discovered pair
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = fmt.Errorf("failed to read trigger %q: %w", trigger, err)
		return result
	}

	counterpartData, err := os.ReadFile(counterpart) // #nosec G304 - path verified against the discovered pair
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = fmt.Errorf("failed to read counterpart %q: %w", counterpart, err)
		return result
	}

	// Idempotence guard: equal after normalization means no write,
	// ever. This is what keeps hook-triggered syncs from looping.
	if Equivalent(triggerData, counterpartData) {
		logging.Debug("pair already in sync", logging.Pair(p.Dir))
		result.Outcome = OutcomeAlreadyInSync
		return result
	}

	// The trigger is the source of truth. Raw bytes are copied as-is:
	// line endings and trailing whitespace of the trigger survive.
	if err := writeFileAtomic(counterpart, triggerData); err != nil {
		result.Outcome = OutcomeError
		result.Err = fmt.Errorf("failed to update counterpart: %w", err)
		return result
	}

	result.Outcome = OutcomeSynced
	result.Direction = fmt.Sprintf("%s -> %s", filepath.Base(trigger), filepath.Base(counterpart))

	logging.Info("pair synchronized",
		logging.Pair(p.Dir),
		logging.Outcome(string(result.Outcome)),
		logging.Path(counterpart),
	)

	return result
}

// record appends the invocation outcome to the sync log.
func (r *Reconciler) record(result *Result) {
	rec := logging.Record{
		Time:      time.Now(),
		PairDir:   result.Pair.Dir,
		Outcome:   string(result.Outcome),
		Direction: result.Direction,
	}
	if result.Pair.Dir == "" {
		rec.PairDir = filepath.Dir(result.TriggerPath)
	}
	if result.Err != nil {
		rec.Detail = result.Err.Error()
	} else if result.Detail != "" {
		rec.Detail = result.Detail
	}
	r.syncLog.Log(rec)
}
