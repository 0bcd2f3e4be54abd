package pair

import (
	gitignore "github.com/sabhiram/go-gitignore"
)

// defaultIgnoreLines lists directories that never hold instruction
// file pairs and would make the walk unbounded on large trees:
// version-control metadata, dependency caches, and build output.
var defaultIgnoreLines = []string{
	".git/",
	".hg/",
	".svn/",
	"node_modules/",
	"vendor/",
	"bower_components/",
	".venv/",
	"venv/",
	"__pycache__/",
	".tox/",
	"dist/",
	"build/",
	"target/",
	"out/",
	".next/",
	".cache/",
	".idea/",
	".vscode/",
	".DS_Store",
}

// Ignorer decides which directories the discovery walk skips.
type Ignorer struct {
	matcher *gitignore.GitIgnore
}

// NewIgnorer compiles the built-in noise list plus any extra
// gitignore-style patterns from configuration.
func NewIgnorer(extra ...string) *Ignorer {
	lines := make([]string, 0, len(defaultIgnoreLines)+len(extra))
	lines = append(lines, defaultIgnoreLines...)
	lines = append(lines, extra...)
	return &Ignorer{matcher: gitignore.CompileIgnoreLines(lines...)}
}

// Ignored reports whether the path (relative to the walk root, using
// forward slashes) should be skipped.
func (ig *Ignorer) Ignored(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}
	return ig.matcher.MatchesPath(relPath)
}
