package reconcile

import (
	"fmt"

	"github.com/alexandrbasis/claude-agents-sync/internal/pair"
)

// Outcome classifies the result of one reconcile invocation.
type Outcome string

const (
	// OutcomeSynced indicates the counterpart was overwritten with the
	// trigger file's bytes.
	OutcomeSynced Outcome = "synced"

	// OutcomeAlreadyInSync indicates the pair's normalized contents
	// were equal; no write occurred.
	OutcomeAlreadyInSync Outcome = "already-in-sync"

	// OutcomeNoMatchingPair indicates the trigger's directory holds no
	// qualifying pair. A no-op, not an error: hooks fire on unrelated
	// files and on files whose counterpart does not exist yet.
	OutcomeNoMatchingPair Outcome = "no-matching-pair"

	// OutcomeAmbiguousTrigger indicates the trigger path matched
	// neither side of the discovered pair. Also a no-op.
	OutcomeAmbiguousTrigger Outcome = "ambiguous-trigger"

	// OutcomeError indicates a read or write failure aborted the sync.
	OutcomeError Outcome = "error"
)

// Result is the ephemeral outcome of a single reconcile invocation.
type Result struct {
	// Pair is the pair that owned the trigger, when one was found.
	Pair pair.SyncPair

	// Outcome classifies what happened.
	Outcome Outcome

	// TriggerPath is the resolved trigger path.
	TriggerPath string

	// CounterpartPath is the file that was (or would have been)
	// overwritten.
	CounterpartPath string

	// Direction describes the copy as "<source> -> <target>" base
	// names when Outcome is OutcomeSynced.
	Direction string

	// Err holds the failure when Outcome is OutcomeError.
	Err error

	// Detail carries extra human-readable context for no-op outcomes.
	Detail string
}

// NoOp reports whether the invocation changed nothing and nothing was
// wrong: no pair, ambiguous trigger, or already in sync.
func (r *Result) NoOp() bool {
	switch r.Outcome {
	case OutcomeAlreadyInSync, OutcomeNoMatchingPair, OutcomeAmbiguousTrigger:
		return true
	default:
		return false
	}
}

// Failed reports whether the invocation ended in an error.
func (r *Result) Failed() bool {
	return r.Outcome == OutcomeError
}

// Summary returns a one-line human-readable description of the result.
func (r *Result) Summary() string {
	switch r.Outcome {
	case OutcomeSynced:
		return fmt.Sprintf("synced %s (%s)", r.Pair.Dir, r.Direction)
	case OutcomeAlreadyInSync:
		return fmt.Sprintf("already in sync: %s", r.Pair.Dir)
	case OutcomeNoMatchingPair:
		if r.Detail != "" {
			return fmt.Sprintf("no matching pair for %s (%s)", r.TriggerPath, r.Detail)
		}
		return fmt.Sprintf("no matching pair for %s", r.TriggerPath)
	case OutcomeAmbiguousTrigger:
		return fmt.Sprintf("trigger %s matches neither side of the pair in %s", r.TriggerPath, r.Pair.Dir)
	case OutcomeError:
		return fmt.Sprintf("sync failed for %s: %v", r.TriggerPath, r.Err)
	default:
		return string(r.Outcome)
	}
}
