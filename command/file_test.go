package command

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestFileSourceInitialAndChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mood.txt")
	if err := os.WriteFile(path, []byte("happy\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := WatchFile(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer src.Close()

	// Startup contents are queued before WatchFile returns
	if line, ok := src.Poll(); !ok || line != "happy" {
		t.Fatalf("Expected initial happy, got %q/%v", line, ok)
	}

	if err := os.WriteFile(path, []byte("angry\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := waitLine(t, src); got != "angry" {
		t.Errorf("Expected angry after change, got %q", got)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mood.txt")

	src, err := WatchFile(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer src.Close()

	if _, ok := src.Poll(); ok {
		t.Fatal("Expected nothing before the file exists")
	}

	if err := os.WriteFile(path, []byte("bored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := waitLine(t, src); got != "bored" {
		t.Errorf("Expected bored once created, got %q", got)
	}
}

func TestWatchFileBadDir(t *testing.T) {
	_, err := WatchFile(filepath.Join(t.TempDir(), "missing", "mood.txt"), zap.NewNop().Sugar())
	if err == nil {
		t.Error("Expected error watching a missing directory")
	}
}
