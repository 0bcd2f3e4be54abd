// Package pair discovers CLAUDE.md/AGENTS.md instruction file pairs
// in a project tree. Discovery is a read-only walk performed fresh on
// every trigger; pairs are never cached across runs.
package pair

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/alexandrbasis/claude-agents-sync/internal/logging"
)

// Instruction file names. Matching is exact and case-sensitive.
const (
	PrimaryName   = "CLAUDE.md"
	SecondaryName = "AGENTS.md"
)

// SyncPair is one directory's (primary, secondary) file tuple. Both
// files exist at discovery time and live in the same directory.
type SyncPair struct {
	// Dir is the directory containing both files.
	Dir string

	// PrimaryPath is the full path to CLAUDE.md.
	PrimaryPath string

	// SecondaryPath is the full path to AGENTS.md.
	SecondaryPath string
}

// NewSyncPair builds the pair for a directory.
func NewSyncPair(dir string) SyncPair {
	return SyncPair{
		Dir:           dir,
		PrimaryPath:   filepath.Join(dir, PrimaryName),
		SecondaryPath: filepath.Join(dir, SecondaryName),
	}
}

// Contains reports whether path is one of the pair's two files.
func (p SyncPair) Contains(path string) bool {
	return path == p.PrimaryPath || path == p.SecondaryPath
}

// Counterpart returns the pair member that is not path. The boolean is
// false when path matches neither file.
func (p SyncPair) Counterpart(path string) (string, bool) {
	switch path {
	case p.PrimaryPath:
		return p.SecondaryPath, true
	case p.SecondaryPath:
		return p.PrimaryPath, true
	default:
		return "", false
	}
}

// Name returns a human-readable identity for the pair relative to
// root: "Root" for the root directory itself, a relative path below.
func (p SyncPair) Name(root string) string {
	rel, err := filepath.Rel(root, p.Dir)
	if err != nil || rel == "." {
		if err != nil {
			return p.Dir
		}
		return "Root"
	}
	return rel
}

// Result holds the outcome of one discovery pass.
type Result struct {
	// Pairs is the unordered set of discovered pairs.
	Pairs mapset.Set[SyncPair]

	// SkippedDirs lists directories that could not be read. A partial
	// walk is expected on heterogeneous trees and is not an error.
	SkippedDirs []string
}

// Partial reports whether any subdirectory was skipped.
func (r *Result) Partial() bool {
	return len(r.SkippedDirs) > 0
}

// Discoverer walks project trees looking for pair sites.
type Discoverer struct {
	ignorer *Ignorer
}

// New creates a Discoverer with the default exclusion policy.
func New() *Discoverer {
	return &Discoverer{ignorer: NewIgnorer()}
}

// NewWithIgnorer creates a Discoverer using a custom exclusion policy.
func NewWithIgnorer(ig *Ignorer) *Discoverer {
	return &Discoverer{ignorer: ig}
}

// Discover walks every directory under root and returns the set of
// pair sites: directories directly containing both CLAUDE.md and
// AGENTS.md. Unreadable subdirectories are skipped with a warning and
// recorded on the result; an empty tree yields an empty set.
func (d *Discoverer) Discover(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", root)
	}

	result := &Result{Pairs: mapset.NewSet[SyncPair]()}

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Permission failure on a subdirectory: record, warn, move on.
			logging.Warn("skipping unreadable directory",
				logging.Path(path),
				logging.Err(err),
			)
			result.SkippedDirs = append(result.SkippedDirs, path)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && d.ignorer.Ignored(filepath.ToSlash(rel)+"/") {
			return filepath.SkipDir
		}

		if p, ok := PairAt(path); ok {
			result.Pairs.Add(p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, walkErr)
	}

	logging.Debug("discovery completed",
		logging.Path(root),
		logging.Count(result.Pairs.Cardinality()),
	)

	return result, nil
}

// PairAt checks a single directory for a pair site. Both files must
// exist and be regular files.
func PairAt(dir string) (SyncPair, bool) {
	p := NewSyncPair(dir)
	if !isRegularFile(p.PrimaryPath) || !isRegularFile(p.SecondaryPath) {
		return SyncPair{}, false
	}
	return p, true
}

// FindPairContaining resolves the trigger path's directory and checks
// it for a qualifying pair. The boolean is false when the directory
// holds no pair, which callers treat as a no-op rather than an error:
// hooks fire on unrelated files and on files whose counterpart does
// not exist yet.
func FindPairContaining(triggerPath string) (SyncPair, bool) {
	return PairAt(filepath.Dir(Resolve(triggerPath)))
}

// Resolve cleans a path and follows symlinks so editors that report a
// symlinked location still match the pair's real files by exact
// string comparison.
func Resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
