package filesystem

import (
	"path/filepath"
	"testing"
)

func TestTrimExtension(t *testing.T) {
	tests := []struct {
		name     string
		ext      string
		expected string
	}{
		{"out.zip", ".zip", "out"},
		{"OUT.ZIP", ".zip", "OUT"},
		{"out.zip.zip", ".zip", "out.zip"},
		{"pizza", ".zip", "pizza"},
		{".zip", ".zip", ".zip"},
		{"out", ".zip", "out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimExtension(tt.name, tt.ext); got != tt.expected {
				t.Errorf("TrimExtension(%q, %q) = %q, want %q", tt.name, tt.ext, got, tt.expected)
			}
		})
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	exists, err := Exists(tmpDir)
	if err != nil || !exists {
		t.Errorf("Exists(%q) = %v, %v, want true, nil", tmpDir, exists, err)
	}

	missing := filepath.Join(tmpDir, "missing")
	exists, err = Exists(missing)
	if err != nil || exists {
		t.Errorf("Exists(%q) = %v, %v, want false, nil", missing, exists, err)
	}
}
