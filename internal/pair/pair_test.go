package pair

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexandrbasis/claude-agents-sync/internal/util"
)

func TestNewSyncPair(t *testing.T) {
	p := NewSyncPair("/proj/backend")
	util.AssertEqual(t, p.Dir, "/proj/backend")
	util.AssertEqual(t, p.PrimaryPath, filepath.Join("/proj/backend", "CLAUDE.md"))
	util.AssertEqual(t, p.SecondaryPath, filepath.Join("/proj/backend", "AGENTS.md"))
}

func TestSyncPair_Counterpart(t *testing.T) {
	p := NewSyncPair("/proj")

	other, ok := p.Counterpart(p.PrimaryPath)
	if !ok {
		t.Fatal("expected counterpart for primary")
	}
	util.AssertEqual(t, other, p.SecondaryPath)

	other, ok = p.Counterpart(p.SecondaryPath)
	if !ok {
		t.Fatal("expected counterpart for secondary")
	}
	util.AssertEqual(t, other, p.PrimaryPath)

	if _, ok := p.Counterpart(filepath.Join("/proj", "README.md")); ok {
		t.Error("unrelated path should have no counterpart")
	}
}

func TestSyncPair_Name(t *testing.T) {
	root := "/proj"

	util.AssertEqual(t, NewSyncPair("/proj").Name(root), "Root")
	util.AssertEqual(t, NewSyncPair("/proj/backend").Name(root), "backend")
	util.AssertEqual(t, NewSyncPair("/proj/a/b").Name(root), filepath.Join("a", "b"))
}

func TestDiscover_FindsAllPairs(t *testing.T) {
	root := t.TempDir()

	// Three qualifying directories at different depths.
	writePair(t, root)
	writePair(t, filepath.Join(root, "backend"))
	writePair(t, filepath.Join(root, "services", "api", "v2"))

	// Non-qualifying: only one of the two files.
	util.WriteFile(t, filepath.Join(root, "docs", "CLAUDE.md"), "solo")
	util.WriteFile(t, filepath.Join(root, "tools", "AGENTS.md"), "solo")

	result, err := New().Discover(root)
	util.AssertNoError(t, err)

	if got := result.Pairs.Cardinality(); got != 3 {
		t.Fatalf("expected 3 pairs, got %d", got)
	}
	if result.Partial() {
		t.Errorf("unexpected skipped dirs: %v", result.SkippedDirs)
	}

	for _, dir := range []string{
		root,
		filepath.Join(root, "backend"),
		filepath.Join(root, "services", "api", "v2"),
	} {
		if !result.Pairs.Contains(NewSyncPair(dir)) {
			t.Errorf("missing pair for %s", dir)
		}
	}
}

func TestDiscover_EmptyTree(t *testing.T) {
	result, err := New().Discover(t.TempDir())
	util.AssertNoError(t, err)
	util.AssertEqual(t, result.Pairs.Cardinality(), 0)
}

func TestDiscover_SkipsNoiseDirectories(t *testing.T) {
	root := t.TempDir()
	writePair(t, filepath.Join(root, "node_modules", "some-dep"))
	writePair(t, filepath.Join(root, ".git", "info"))
	writePair(t, filepath.Join(root, "src"))

	result, err := New().Discover(root)
	util.AssertNoError(t, err)

	if got := result.Pairs.Cardinality(); got != 1 {
		t.Fatalf("expected only the src pair, got %d", got)
	}
	if !result.Pairs.Contains(NewSyncPair(filepath.Join(root, "src"))) {
		t.Error("src pair missing")
	}
}

func TestDiscover_CustomIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writePair(t, filepath.Join(root, "generated"))
	writePair(t, filepath.Join(root, "src"))

	d := NewWithIgnorer(NewIgnorer("generated/"))
	result, err := d.Discover(root)
	util.AssertNoError(t, err)

	if result.Pairs.Contains(NewSyncPair(filepath.Join(root, "generated"))) {
		t.Error("custom-ignored pair should be excluded")
	}
	if !result.Pairs.Contains(NewSyncPair(filepath.Join(root, "src"))) {
		t.Error("src pair missing")
	}
}

func TestDiscover_CaseSensitiveNames(t *testing.T) {
	root := t.TempDir()
	util.WriteFile(t, filepath.Join(root, "claude.md"), "lower")
	util.WriteFile(t, filepath.Join(root, "AGENTS.md"), "upper")

	result, err := New().Discover(root)
	util.AssertNoError(t, err)

	// claude.md is not CLAUDE.md; no pair qualifies. The check only
	// holds on case-sensitive filesystems, so skip where it cannot.
	if _, err := os.Stat(filepath.Join(root, "CLAUDE.md")); err == nil {
		t.Skip("case-insensitive filesystem")
	}
	util.AssertEqual(t, result.Pairs.Cardinality(), 0)
}

func TestDiscover_UnreadableSubdirIsPartial(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	writePair(t, filepath.Join(root, "ok"))

	locked := filepath.Join(root, "locked")
	writePair(t, locked)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	result, err := New().Discover(root)
	util.AssertNoError(t, err)

	if !result.Pairs.Contains(NewSyncPair(filepath.Join(root, "ok"))) {
		t.Error("readable pair missing from partial result")
	}
	if !result.Partial() {
		t.Error("expected the unreadable directory to be recorded")
	}
}

func TestPairAt(t *testing.T) {
	dir := t.TempDir()

	if _, ok := PairAt(dir); ok {
		t.Error("empty directory should not qualify")
	}

	util.WriteFile(t, filepath.Join(dir, "CLAUDE.md"), "a")
	if _, ok := PairAt(dir); ok {
		t.Error("single file should not qualify")
	}

	util.WriteFile(t, filepath.Join(dir, "AGENTS.md"), "b")
	p, ok := PairAt(dir)
	if !ok {
		t.Fatal("expected a qualifying pair")
	}
	util.AssertEqual(t, p.Dir, dir)
}

func TestFindPairContaining(t *testing.T) {
	root := t.TempDir()
	writePair(t, root)

	p, ok := FindPairContaining(filepath.Join(root, "CLAUDE.md"))
	if !ok {
		t.Fatal("expected pair for trigger path")
	}
	if p.PrimaryPath == "" || p.SecondaryPath == "" {
		t.Error("pair paths not populated")
	}

	if _, ok := FindPairContaining(filepath.Join(root, "missing", "CLAUDE.md")); ok {
		t.Error("nonexistent directory should have no pair")
	}
}

func TestIgnorer(t *testing.T) {
	ig := NewIgnorer()

	tests := []struct {
		rel     string
		ignored bool
	}{
		{"node_modules/", true},
		{"src/node_modules/", true},
		{".git/", true},
		{"target/", true},
		{"src/", false},
		{"backend/api/", false},
		{".", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ig.Ignored(tt.rel); got != tt.ignored {
			t.Errorf("Ignored(%q) = %v, want %v", tt.rel, got, tt.ignored)
		}
	}
}

// writePair creates both instruction files in dir.
func writePair(t *testing.T, dir string) {
	t.Helper()
	util.WriteFile(t, filepath.Join(dir, PrimaryName), "# instructions\n")
	util.WriteFile(t, filepath.Join(dir, SecondaryName), "# instructions\n")
}
