package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherDebounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	fw, err := NewFileWatcher(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 10)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`{"n":1}`), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	select {
	case got := <-changed:
		abs, _ := filepath.Abs(path)
		if got != abs {
			t.Errorf("Callback path failed: expected %s, got %s", abs, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("No change notification received")
	}

	select {
	case <-changed:
		t.Errorf("Burst of writes must be debounced into one callback")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := NewFileWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{filepath.Join(t.TempDir(), "missing")}, func(string) {}); err == nil {
		t.Errorf("Watching a missing file must fail")
	}
}
