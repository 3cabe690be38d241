// Package testutil provides common test helpers for the pyctx project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempProject creates a temporary Python project directory containing a
// pyproject.toml and returns its path. The directory is automatically
// cleaned up when the test finishes.
func TempProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	pyproject := `[project]
name = "sample"
version = "0.1.0"
requires-python = ">=3.11"
`
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(pyproject), 0644); err != nil {
		t.Fatalf("TempProject: write pyproject.toml failed: %v", err)
	}

	return dir
}

// TempProjectWithLock creates a temporary project with a lockfile for the
// given manager (poetry.lock, uv.lock, or Pipfile).
func TempProjectWithLock(t *testing.T, manager string) string {
	t.Helper()

	dir := TempProject(t)

	var lockName string
	switch manager {
	case "poetry":
		lockName = "poetry.lock"
	case "uv":
		lockName = "uv.lock"
	case "pipenv":
		lockName = "Pipfile"
	default:
		t.Fatalf("TempProjectWithLock: unknown manager %q", manager)
	}

	if err := os.WriteFile(filepath.Join(dir, lockName), []byte("# lock\n"), 0644); err != nil {
		t.Fatalf("TempProjectWithLock: write %s failed: %v", lockName, err)
	}

	return dir
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}

// TempCacheFile creates a temporary cache.json with the given content
// and returns its path.
func TempCacheFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempCacheFile: write failed: %v", err)
	}

	return path
}

// WriteDotenv writes a .env file into the given project directory.
func WriteDotenv(t *testing.T, projectDir, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(projectDir, ".env"), []byte(content), 0600); err != nil {
		t.Fatalf("WriteDotenv: write failed: %v", err)
	}
}

// WriteVenvDir creates a fake virtualenv directory layout (bin/activate)
// under dir and returns the venv path.
func WriteVenvDir(t *testing.T, dir, name string) string {
	t.Helper()

	venv := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Join(venv, "bin"), 0755); err != nil {
		t.Fatalf("WriteVenvDir: mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(venv, "bin", "activate"), []byte("# activate\n"), 0644); err != nil {
		t.Fatalf("WriteVenvDir: write activate failed: %v", err)
	}

	return venv
}
