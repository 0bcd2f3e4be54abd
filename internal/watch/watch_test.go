package watch

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alexandrbasis/claude-agents-sync/internal/reconcile"
	"github.com/alexandrbasis/claude-agents-sync/internal/util"
)

type stubSyncer struct {
	calls   []string
	outcome reconcile.Outcome
}

func (s *stubSyncer) Sync(triggerPath string) *reconcile.Result {
	s.calls = append(s.calls, triggerPath)
	return &reconcile.Result{Outcome: s.outcome, TriggerPath: triggerPath}
}

func TestIsInstructionFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/proj/CLAUDE.md", true},
		{"/proj/deep/nested/AGENTS.md", true},
		{"/proj/claude.md", false},
		{"/proj/README.md", false},
		{"/proj/CLAUDE.md.bak", false},
	}

	for _, tt := range tests {
		if got := isInstructionFile(tt.path); got != tt.want {
			t.Errorf("isInstructionFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestReconcileOne_InvokesSyncer(t *testing.T) {
	syncer := &stubSyncer{outcome: reconcile.OutcomeSynced}
	w := New(t.TempDir(), syncer, time.Millisecond)

	var observed []*reconcile.Result
	w.OnResult = func(r *reconcile.Result) { observed = append(observed, r) }

	trigger := filepath.Join("/proj", "CLAUDE.md")
	w.reconcileOne(trigger)

	util.AssertEqual(t, len(syncer.calls), 1)
	util.AssertEqual(t, syncer.calls[0], trigger)
	util.AssertEqual(t, len(observed), 1)
}

func TestReconcileOne_NoOpNotObserved(t *testing.T) {
	syncer := &stubSyncer{outcome: reconcile.OutcomeAlreadyInSync}
	w := New(t.TempDir(), syncer, time.Millisecond)

	observed := 0
	w.OnResult = func(*reconcile.Result) { observed++ }

	w.reconcileOne("/proj/CLAUDE.md")

	util.AssertEqual(t, len(syncer.calls), 1)
	util.AssertEqual(t, observed, 0)
}

func TestNew_DebounceFloor(t *testing.T) {
	w := New("/proj", &stubSyncer{}, 0)
	if w.debounce <= 0 {
		t.Error("expected a positive default debounce")
	}
}
