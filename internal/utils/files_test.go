package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")
	if err := SafeWriteFile(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := SafeWriteFile(path, []byte("second")); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "second" {
		t.Errorf("content = %q", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("leftover temp files: %v", entries)
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.txt")
	if err := SafeWriteFile(path, []byte("x")); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		t.Fatal(err)
	}
	if err := SafeWriteFile(path, []byte("x")); err != nil {
		t.Fatal(err)
	}
}
