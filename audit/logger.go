package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Actions derived from HTTP verbs and applied by storage operations.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event is one line in the HIPAA audit trail (audit-YYYY-MM-DD.log).
type Event struct {
	Timestamp    time.Time      `json:"timestamp"`
	UserID       uint           `json:"userId"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   uint           `json:"resourceId,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// AccessEntry is one line in the API access log (api-access-YYYY-MM-DD.log).
type AccessEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"requestId"`
	UserID       uint      `json:"userId"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceId,omitempty"`
	Method       string    `json:"method"`
	Path         string    `json:"path"`
	IP           string    `json:"ip"`
	UserAgent    string    `json:"userAgent"`
}

// Logger appends JSON lines to date-partitioned, append-only files. Write
// failures never propagate to the operation being audited; they are counted
// so operational monitoring can alarm on a silent trail.
type Logger struct {
	dir      string
	mu       sync.Mutex
	failures atomic.Int64
}

func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory %s: %w", dir, err)
	}
	return &Logger{dir: dir}, nil
}

// LogEvent records one access to a HIPAA-sensitive resource.
func (l *Logger) LogEvent(userID uint, action, resourceType string, resourceID uint, details map[string]any) {
	l.append("audit", Event{
		Timestamp:    time.Now().UTC(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	})
}

// LogAccess records one inbound API request.
func (l *Logger) LogAccess(entry AccessEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	l.append("api-access", entry)
}

// WriteFailures reports how many audit lines could not be written.
func (l *Logger) WriteFailures() int64 {
	return l.failures.Load()
}

// Dir returns the audit log directory.
func (l *Logger) Dir() string {
	return l.dir
}

func (l *Logger) append(prefix string, v any) {
	line, err := json.Marshal(v)
	if err != nil {
		l.failures.Add(1)
		log.Printf("audit: failed to marshal %s entry: %v", prefix, err)
		return
	}
	name := fmt.Sprintf("%s-%s.log", prefix, time.Now().UTC().Format("2006-01-02"))
	path := filepath.Join(l.dir, name)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.failures.Add(1)
		log.Printf("audit: failed to open %s: %v", path, err)
		return
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		l.failures.Add(1)
		log.Printf("audit: failed to append to %s: %v", path, err)
	}
}
