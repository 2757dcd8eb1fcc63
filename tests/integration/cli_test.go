package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI runs the dsmzip command with the given arguments
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../cmd/dsmzip"}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func createTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

func TestCompressDirectory_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "docs")
	files := map[string]string{
		"a.txt":         "hello",
		"sub/b.txt":     "0123456789",
		"sub/deep/c.md": strings.Repeat("# title\n", 200),
	}
	createTree(t, source, files)

	stdout, stderr, err := runCLI(t, "compress", "directory", source, "--to-parent-directory", "--no-progress")
	if err != nil {
		t.Fatalf("compress failed: %v, stderr: %s", err, stderr)
	}

	archivePath := filepath.Join(tmpDir, "docs.zip")
	if _, err := os.Stat(archivePath); err != nil {
		t.Fatalf("Expected archive at %s: %v", archivePath, err)
	}

	// Summary table names the archive and its directory
	if !strings.Contains(stdout, "docs.zip") || !strings.Contains(stdout, "Original Size") {
		t.Errorf("Expected summary table, got: %s", stdout)
	}

	_, stderr, err = runCLI(t, "extract", archivePath, "-p", "--name", "restored", "--no-progress")
	if err != nil {
		t.Fatalf("extract failed: %v, stderr: %s", err, stderr)
	}

	for name, content := range files {
		data, err := os.ReadFile(filepath.Join(tmpDir, "restored", filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("Missing %s after extraction: %v", name, err)
			continue
		}
		if string(data) != content {
			t.Errorf("Content of %s differs after round trip", name)
		}
	}
}

func TestExtract_OverwriteGuard(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "site")
	createTree(t, source, map[string]string{"index.html": "<html></html>"})

	if _, stderr, err := runCLI(t, "compress", "directory", source, "-p", "--no-progress"); err != nil {
		t.Fatalf("compress failed: %v, stderr: %s", err, stderr)
	}

	// Extracting beside the archive targets the original directory
	_, stderr, err := runCLI(t, "extract", filepath.Join(tmpDir, "site.zip"), "-p", "--no-progress")
	if err == nil {
		t.Fatal("Expected error for existing destination, got nil")
	}
	if !strings.Contains(stderr, "already exists") {
		t.Errorf("Expected 'already exists' error, got stderr: %s", stderr)
	}

	createTree(t, source, map[string]string{"stale.txt": "stale"})

	if _, stderr, err := runCLI(t, "extract", filepath.Join(tmpDir, "site.zip"), "-p", "--overwrite", "--no-progress"); err != nil {
		t.Fatalf("extract --overwrite failed: %v, stderr: %s", err, stderr)
	}
	if _, err := os.Stat(filepath.Join(source, "stale.txt")); !os.IsNotExist(err) {
		t.Error("Expected stale file to be removed by --overwrite")
	}
	if _, err := os.Stat(filepath.Join(source, "index.html")); err != nil {
		t.Errorf("Expected index.html after overwrite: %v", err)
	}
}

func TestCompressFiles_List(t *testing.T) {
	tmpDir := t.TempDir()
	createTree(t, tmpDir, map[string]string{
		"one/x.txt": "xxx",
		"two/y.txt": "yyyy",
	})
	archivePath := filepath.Join(tmpDir, "bundle.zip")

	_, stderr, err := runCLI(t, "compress", "files",
		filepath.Join(tmpDir, "one", "x.txt"),
		filepath.Join(tmpDir, "two", "y.txt"),
		"--name", filepath.Join(tmpDir, "bundle"),
		"--no-progress")
	if err != nil {
		t.Fatalf("compress files failed: %v, stderr: %s", err, stderr)
	}

	stdout, stderr, err := runCLI(t, "list", archivePath)
	if err != nil {
		t.Fatalf("list failed: %v, stderr: %s", err, stderr)
	}

	xIdx := strings.Index(stdout, "x.txt")
	yIdx := strings.Index(stdout, "y.txt")
	if xIdx < 0 || yIdx < 0 || xIdx > yIdx {
		t.Errorf("Expected x.txt then y.txt in listing, got: %s", stdout)
	}
	if strings.Contains(stdout, "one/") || strings.Contains(stdout, "two/") {
		t.Errorf("File-list archive should not keep directories, got: %s", stdout)
	}
}

func TestCompressDirectory_NotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, stderr, err := runCLI(t, "compress", "directory", missing, "-p")
	if err == nil {
		t.Fatal("Expected error for missing directory, got nil")
	}
	if !strings.Contains(stderr, "does not exist") {
		t.Errorf("Expected 'does not exist' error, got stderr: %s", stderr)
	}
}

func TestExtract_NotZip(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "data.tar")
	if err := os.WriteFile(tmpFile, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	_, stderr, err := runCLI(t, "extract", tmpFile, "-p")
	if err == nil {
		t.Fatal("Expected error for non-zip file, got nil")
	}
	if !strings.Contains(stderr, "does not appear to be a zip file") {
		t.Errorf("Expected format error, got stderr: %s", stderr)
	}
}

func TestCompressDirectory_JSONReport(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "data")
	createTree(t, source, map[string]string{"a.txt": strings.Repeat("a", 4096)})
	reportPath := filepath.Join(tmpDir, "report.json")

	stdout, stderr, err := runCLI(t, "compress", "directory", source, "-p", "--no-progress",
		"--level", "smallest", "--report", "json", "--output", reportPath)
	if err != nil {
		t.Fatalf("compress failed: %v, stderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, reportPath) {
		t.Errorf("Expected report path in output, got: %s", stdout)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("Expected report file: %v", err)
	}

	var report map[string]interface{}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Invalid JSON report: %v", err)
	}
	if report["operation"] != "compress" || report["original_size"] != float64(4096) {
		t.Errorf("Unexpected report: %v", report)
	}
}

func TestInvalidLevel(t *testing.T) {
	source := t.TempDir()

	_, stderr, err := runCLI(t, "compress", "directory", source, "-p", "--level", "turbo")
	if err == nil {
		t.Fatal("Expected error for invalid level, got nil")
	}
	if !strings.Contains(stderr, "--level must be one of") {
		t.Errorf("Expected level validation error, got stderr: %s", stderr)
	}
}

func TestInvalidBufferSize(t *testing.T) {
	source := t.TempDir()

	_, stderr, err := runCLI(t, "compress", "directory", source, "-p", "--buffer-size", "1000000G")
	if err == nil {
		t.Fatal("Expected error for oversized buffer, got nil")
	}
	if !strings.Contains(stderr, "--buffer-size must be") {
		t.Errorf("Expected buffer size validation error, got stderr: %s", stderr)
	}
	if strings.Contains(stderr, "panic") {
		t.Errorf("Expected a clean error, got stderr: %s", stderr)
	}
}
