package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexandrbasis/claude-agents-sync/internal/pair"
)

func samplePairs() []PairInfo {
	return []PairInfo{
		{
			Pair:     pair.NewSyncPair("/proj"),
			Name:     "Root",
			InSync:   true,
			Modified: time.Now(),
			Size:     512,
		},
		{
			Pair:     pair.NewSyncPair("/proj/backend"),
			Name:     "backend",
			InSync:   false,
			Modified: time.Now().Add(-time.Hour),
			Size:     2048,
		},
	}
}

func TestNewPairListModel(t *testing.T) {
	m := NewPairListModel(samplePairs())

	if len(m.pairs) != 2 {
		t.Errorf("expected 2 pairs, got %d", len(m.pairs))
	}
	if len(m.filtered) != 2 {
		t.Errorf("expected 2 filtered pairs, got %d", len(m.filtered))
	}
	// Sorted case-insensitively by name: "backend" before "Root".
	if m.pairs[0].Name != "backend" {
		t.Errorf("expected backend first after sort, got %s", m.pairs[0].Name)
	}
}

func TestPairListModel_Filter(t *testing.T) {
	m := NewPairListModel(samplePairs())
	m.filter = "back"
	m.applyFilter()

	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 filtered pair, got %d", len(m.filtered))
	}
	if m.filtered[0].Name != "backend" {
		t.Errorf("expected backend, got %s", m.filtered[0].Name)
	}

	m.filter = ""
	m.applyFilter()
	if len(m.filtered) != 2 {
		t.Errorf("expected filter clear to restore 2 pairs, got %d", len(m.filtered))
	}
}

func TestPairListModel_SyncSelection(t *testing.T) {
	m := NewPairListModel(samplePairs())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final, ok := updated.(PairListModel)
	if !ok {
		t.Fatal("Update did not return a PairListModel")
	}

	result := final.Result()
	if result.Action != PairActionSync {
		t.Errorf("expected PairActionSync, got %v", result.Action)
	}
	if result.Pair.Dir == "" {
		t.Error("expected a selected pair")
	}
}

func TestPairListModel_Quit(t *testing.T) {
	m := NewPairListModel(samplePairs())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final := updated.(PairListModel)

	if final.Result().Action != PairActionNone {
		t.Error("quit should not select an action")
	}
	if cmd == nil {
		t.Error("quit should produce a tea.Quit command")
	}
}

func TestPairListModel_View(t *testing.T) {
	m := NewPairListModel(samplePairs())
	view := m.View()

	if view == "" {
		t.Fatal("expected non-empty view")
	}
}

func TestTruncatePairListValue(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-pair-name", 10, "a-very-..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}

	for _, tt := range tests {
		if got := truncatePairListValue(tt.value, tt.width); got != tt.want {
			t.Errorf("truncatePairListValue(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestRunPairList_EmptyPairs(t *testing.T) {
	result, err := RunPairList(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Action != PairActionNone {
		t.Error("empty pair list should return no action")
	}
}
