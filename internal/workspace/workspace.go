package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

// BranchDirPrefix prefixes every branch checkout directory name.
const BranchDirPrefix = "docs-branch-"

// Manager hands out checkout directories below a root directory.
type Manager struct {
	root string
}

// NewManager creates a manager rooted at root, or the OS temp dir when empty.
func NewManager(root string) *Manager {
	if root == "" {
		root = os.TempDir()
	}
	return &Manager{root: root}
}

// Root returns the directory checkouts are created in.
func (m *Manager) Root() string { return m.root }

// BranchDirName derives the checkout directory name for a branch,
// e.g. "docs/payments" becomes "docs-branch-docs-payments".
func BranchDirName(branch string) string {
	return BranchDirPrefix + strings.ReplaceAll(branch, "/", "-")
}

// Dir is an acquired checkout directory.
type Dir struct {
	path     string
	released bool
}

// Path returns the absolute directory path.
func (d *Dir) Path() string { return d.path }

// Release removes the directory. It is safe to call more than once.
func (d *Dir) Release() error {
	if d == nil || d.released {
		return nil
	}
	d.released = true
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("failed to remove checkout %s: %w", d.path, err)
	}
	slog.Debug("Released checkout", logfields.Path(d.path))
	return nil
}

// Acquire reserves the checkout directory for branch. Any directory left at
// that path by an earlier run is removed first; the directory itself is not
// created so a clone can populate it.
func (m *Manager) Acquire(branch string) (*Dir, error) {
	if err := os.MkdirAll(m.root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create workspace root: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(m.root, BranchDirName(branch)))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve checkout path: %w", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		slog.Debug("Removing stale checkout", logfields.Path(path))
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("failed to remove stale checkout: %w", err)
		}
	}
	return &Dir{path: path}, nil
}
