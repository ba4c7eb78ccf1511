package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/solobooks/solobooks/internal/configs"
)

// Entry represents a single audit log entry. Entries record lifecycle
// operations on the database file; they never contain passwords, keys, or
// business data.
type Entry struct {
	// ID is a UUID assigned when the entry is logged.
	ID string `json:"id"`

	// Timestamp is RFC3339 with microseconds, UTC.
	Timestamp string `json:"ts"`

	// Operation names the lifecycle operation (open/close/encrypt/...).
	Operation string `json:"op"`

	// Path is the data file or container path, when one is involved.
	Path string `json:"path,omitempty"`

	// Encrypted records whether the operation ran on an encrypted database.
	Encrypted bool `json:"encrypted,omitempty"`

	// Detail carries extra context, like the import classification.
	Detail string `json:"detail,omitempty"`

	// Error is the failure summary for failed operations.
	Error string `json:"error,omitempty"`
}

// Log appends an entry to the audit log. If logging fails it returns
// silently; lifecycle operations must not fail because the audit log is
// unwritable.
func Log(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return filepath.Join(configs.AppSettings.ConfigDir, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log. Returns an empty slice
// if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries. Malformed lines
// are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
