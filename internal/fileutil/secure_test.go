package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// assertPermNoMoreThan checks that the file at path has permissions no more
// permissive than want. This is umask-tolerant: a umask of 0077 turning 0644
// into 0600 is fine, but 0644 appearing as 0666 would fail.
func assertPermNoMoreThan(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	got := info.Mode().Perm()
	if got&^want != 0 {
		t.Errorf("perm = %04o, has bits beyond %04o (extra: %04o)", got, want, got&^want)
	}
}

func TestSecureMkdirAll(t *testing.T) {
	tests := []struct {
		name string
		perm os.FileMode
	}{
		{"owner_only_0700", 0700},
		{"permissive_0755", 0755},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "a", "b", "c")
			if err := SecureMkdirAll(dir, tt.perm); err != nil {
				t.Fatalf("SecureMkdirAll: %v", err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				t.Fatalf("Stat: %v", err)
			}
			if !info.IsDir() {
				t.Fatal("not a directory")
			}
			if runtime.GOOS != "windows" {
				assertPermNoMoreThan(t, dir, tt.perm)
			}
		})
	}
}

func TestSecureMkdirAllExisting(t *testing.T) {
	dir := t.TempDir()
	if err := SecureMkdirAll(dir, 0700); err != nil {
		t.Fatalf("SecureMkdirAll on existing dir: %v", err)
	}
}

func TestSecureOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invc.log")

	f, err := SecureOpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		t.Fatalf("SecureOpenFile: %v", err)
	}
	if _, err := f.WriteString("line one\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening appends.
	f, err = SecureOpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_, _ = f.WriteString("line two\n")
	_ = f.Close()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "line one\nline two\n" {
		t.Errorf("content = %q", got)
	}
	if runtime.GOOS != "windows" {
		assertPermNoMoreThan(t, path, 0600)
	}
}

func TestSecureOpenFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "invc.log")
	if _, err := SecureOpenFile(path, os.O_CREATE|os.O_WRONLY, 0600); err == nil {
		t.Error("expected error for missing parent directory")
	}
}
