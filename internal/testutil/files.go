// Package testutil holds fixtures shared by package tests: project trees on
// disk, git repositories with documentation branches, and file assertions.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTree creates files under root. Keys are slash-separated relative paths.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

// FileAssertions checks file system state relative to a base directory.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if st, err := os.Stat(fullPath); err != nil {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	} else if st.IsDir() {
		fa.t.Errorf("Expected %s to be a file, but it's a directory", fullPath)
	}
	return fa
}

func (fa *FileAssertions) AssertNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected path to not exist: %s", fullPath)
	}
	return fa
}

func (fa *FileAssertions) AssertDirExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if stat, err := os.Stat(fullPath); err != nil {
		fa.t.Errorf("Expected directory to exist: %s", fullPath)
	} else if !stat.IsDir() {
		fa.t.Errorf("Expected %s to be a directory, but it's a file", fullPath)
	}
	return fa
}

func (fa *FileAssertions) AssertFileContains(relativePath, expected string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return fa
	}
	if !strings.Contains(string(content), expected) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", relativePath, expected, string(content))
	}
	return fa
}

func (fa *FileAssertions) AssertFileNotContains(relativePath, unexpected string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return fa
	}
	if strings.Contains(string(content), unexpected) {
		fa.t.Errorf("Expected file %s not to contain %q", relativePath, unexpected)
	}
	return fa
}
