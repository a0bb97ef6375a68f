package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/etds/foundation/core/error"
)

func TestFileReportsInitialAndChangedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.txt")
	if err := os.WriteFile(path, []byte("a + b"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, Options{Debounce: 20 * time.Millisecond}, func(content string) {
			seen <- content
		})
	}()

	expect := func(want string) {
		t.Helper()
		select {
		case got := <-seen:
			if got != want {
				t.Fatalf("content = %q, want %q", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	expect("a + b")

	if err := os.WriteFile(path, []byte("a * b"), 0644); err != nil {
		t.Fatal(err)
	}
	expect("a * b")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("File() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("File() did not return after cancel")
	}
}

func TestFileMissing(t *testing.T) {
	err := File(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), Options{}, func(string) {
		t.Error("callback should not run")
	})
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("File() error = %v, want NOT_FOUND", err)
	}
}
