package safeio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanUserPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		hasError bool
	}{
		{name: "simple path", input: "manifest.json", expected: "manifest.json"},
		{name: "relative path", input: "./scripts/foo.sh", expected: "scripts/foo.sh"},
		{name: "absolute path", input: "/tmp/manifest.json", expected: "/tmp/manifest.json"},
		{name: "traversal", input: "../../etc/passwd", hasError: true},
		{name: "traversal in middle", input: "scripts/../../etc/passwd", hasError: true},
		{name: "dots without traversal", input: "backup.v2.sh", expected: "backup.v2.sh"},
		{name: "empty", input: "", expected: "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanUserPath(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("expected error for %q, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReadFileContained(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "sub", "a.sh")
	if err := os.MkdirAll(filepath.Dir(inside), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(inside, []byte("# @name a\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFileContained(base, inside)
	if err != nil {
		t.Fatalf("contained read failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty read")
	}

	outside := t.TempDir()
	escape := filepath.Join(outside, "b.sh")
	if err := os.WriteFile(escape, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFileContained(base, escape); err == nil {
		t.Error("read outside base directory should fail")
	}
}

func TestWriteFilePreservePerms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "manifest.json")

	if err := WriteFilePreservePerms(path, []byte("{}")); err != nil {
		t.Fatalf("fresh write failed: %v", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode()&0o777 != 0o644 {
		t.Errorf("fresh file mode = %v, want 0644", st.Mode())
	}

	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFilePreservePerms(path, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	st, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode()&0o777 != 0o600 {
		t.Errorf("rewrite changed mode to %v, want 0600 preserved", st.Mode())
	}
}
