package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Record is one sync-log entry: the outcome of a single reconcile
// invocation, destined for the human-readable append-only log.
type Record struct {
	Time      time.Time
	PairDir   string
	Outcome   string
	Direction string
	Detail    string
}

// String renders the record as a single log line.
func (r Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(r.Outcome)
	sb.WriteString(" pair=")
	sb.WriteString(r.PairDir)
	if r.Direction != "" {
		sb.WriteString(" direction=")
		sb.WriteString(r.Direction)
	}
	if r.Detail != "" {
		sb.WriteString(" ")
		sb.WriteString(r.Detail)
	}
	return sb.String()
}

// SyncLog is the capability the reconciler uses to report outcomes.
// Implementations must tolerate concurrent invocations from separate
// processes; failures to log are not failures to sync.
type SyncLog interface {
	Log(rec Record)
}

// Discard is a SyncLog that drops every record.
var Discard SyncLog = discardLog{}

type discardLog struct{}

func (discardLog) Log(Record) {}

// FileSyncLog appends records to a log file, one line per record.
// An advisory flock serializes appends across concurrent hook
// processes so lines never interleave.
type FileSyncLog struct {
	path string
}

// NewFileSyncLog creates a file-backed sync log at path. The parent
// directory is created on first append, not here.
func NewFileSyncLog(path string) *FileSyncLog {
	return &FileSyncLog{path: path}
}

// Log appends the record. Errors are reported to the structured logger
// and otherwise swallowed: the sync log is observability, not state.
func (f *FileSyncLog) Log(rec Record) {
	if err := f.append(rec); err != nil {
		Warn("failed to append sync log", Path(f.path), Err(err))
	}
}

func (f *FileSyncLog) append(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	lock := flock.New(f.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock sync log: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	// #nosec G304 - log path comes from configuration
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open sync log: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString(rec.String() + "\n"); err != nil {
		return fmt.Errorf("failed to write sync log: %w", err)
	}
	return nil
}

// CaptureSyncLog records entries in memory for tests.
type CaptureSyncLog struct {
	Records []Record
}

// Log appends the record to the in-memory slice.
func (c *CaptureSyncLog) Log(rec Record) {
	c.Records = append(c.Records, rec)
}
