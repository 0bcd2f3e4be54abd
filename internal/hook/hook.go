// Package hook parses the Claude Code PostToolUse event envelope and
// extracts the trigger path for a reconcile. This is deliberately thin
// glue: the envelope is decoded, the just-written file path pulled
// out, and everything else ignored.
package hook

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Tool names whose events carry a file write.
const (
	ToolEdit  = "Edit"
	ToolWrite = "Write"
)

// Event is the subset of the PostToolUse envelope agentsync consumes.
type Event struct {
	ToolName  string    `json:"tool_name"`
	ToolInput ToolInput `json:"tool_input"`
}

// ToolInput carries the per-tool parameters; only the file path
// matters here.
type ToolInput struct {
	FilePath string `json:"file_path"`
}

// ParseEvent decodes a PostToolUse envelope from r.
func ParseEvent(r io.Reader) (*Event, error) {
	var ev Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return nil, fmt.Errorf("failed to decode hook event: %w", err)
	}
	return &ev, nil
}

// TriggerPath returns the file path the event reports as just
// written. The boolean is false for events that carry no write: tools
// other than Edit/Write, or inputs without a file path. Such events
// are skipped silently so the hook never blocks the editor.
func (e *Event) TriggerPath() (string, bool) {
	if e.ToolName != ToolEdit && e.ToolName != ToolWrite {
		return "", false
	}
	if e.ToolInput.FilePath == "" {
		return "", false
	}
	return e.ToolInput.FilePath, true
}

// FallbackPath resolves the trigger from the non-envelope input
// channels the hook runtime may use instead: a positional argument
// first, then the FILE_PATH environment variable.
func FallbackPath(args []string, getenv func(string) string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return getenv("FILE_PATH")
}
