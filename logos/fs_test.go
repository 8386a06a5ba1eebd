package logos

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystemGet(t *testing.T) {
	dir := t.TempDir()
	want := []byte("png-bytes")
	if err := os.WriteFile(filepath.Join(dir, "VTK.png"), want, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewFilesystem(dir)
	rc, contentType, err := store.Get(context.Background(), "VTK")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()

	if contentType != "image/png" {
		t.Fatalf("content type = %q", contentType)
	}
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("body = %q, want %q", got, want)
	}
}

func TestFilesystemStripsSpaces(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "IndustriaLeuven.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewFilesystem(dir)
	rc, _, err := store.Get(context.Background(), "Industria Leuven")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	rc.Close()
}

func TestFilesystemMissingLogo(t *testing.T) {
	store := NewFilesystem(t.TempDir())
	_, _, err := store.Get(context.Background(), "Nobody")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestFilesystemRejectsPathTraversal(t *testing.T) {
	store := NewFilesystem(t.TempDir())
	for _, name := range []string{"../secret", "a/b", `a\b`} {
		if _, _, err := store.Get(context.Background(), name); !IsNotFound(err) {
			t.Fatalf("Get(%q) err = %v, want not found", name, err)
		}
	}
}

func TestKey(t *testing.T) {
	if got := key("Industria Leuven"); got != "IndustriaLeuven.png" {
		t.Fatalf("key = %q", got)
	}
}
