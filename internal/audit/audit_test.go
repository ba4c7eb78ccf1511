package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/solobooks/solobooks/internal/configs"
)

func overrideConfigDir(t *testing.T) {
	t.Helper()
	original := configs.AppSettings
	t.Cleanup(func() { configs.AppSettings = original })
	configs.AppSettings = &configs.Settings{
		ConfigDir: filepath.Join(t.TempDir(), "config"),
		DataDir:   filepath.Join(t.TempDir(), "data"),
	}
}

func TestLogAndReadEntries(t *testing.T) {
	overrideConfigDir(t)

	Log(Entry{Operation: "encrypt", Path: "/tmp/solobooks.db", Encrypted: true})
	Log(Entry{Operation: "open", Path: "/tmp/solobooks.db", Encrypted: true})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "encrypt" || entries[1].Operation != "open" {
		t.Errorf("Entries out of order: %v", entries)
	}
	if entries[0].ID == "" || entries[0].Timestamp == "" {
		t.Error("Expected ID and timestamp to be filled in")
	}
	if entries[0].ID == entries[1].ID {
		t.Error("Expected unique entry IDs")
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	overrideConfigDir(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil for missing log, got %v", entries)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"id":"a","ts":"2026-01-02T03:04:05.000000Z","op":"open"}
not json at all
{"id":"b","ts":"2026-01-02T03:05:05.000000Z","op":"close"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "open" || entries[1].Operation != "close" {
		t.Errorf("Unexpected entries: %v", entries)
	}
}

func TestLog_RestrictsPermissions(t *testing.T) {
	overrideConfigDir(t)

	Log(Entry{Operation: "open"})

	info, err := os.Stat(LogPath())
	if err != nil {
		t.Fatalf("Expected log file, got: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}
}
