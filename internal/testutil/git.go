package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var signature = object.Signature{Name: "tester", Email: "t@example.com"}

// NewOriginRepo initializes a repository with one commit on the default branch
// and one branch per key of branches, each holding the given file tree.
// It returns the repository path.
func NewOriginRepo(t *testing.T, branches map[string]map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "origin")
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init origin: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	commitTree(t, wt, dir, map[string]string{"README.md": "main"}, "initial")
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("head: %v", err)
	}

	names := make([]string, 0, len(branches))
	for name := range branches {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := wt.Checkout(&git.CheckoutOptions{Hash: head.Hash(), Branch: plumbing.NewBranchReferenceName(name), Create: true}); err != nil {
			t.Fatalf("checkout %s: %v", name, err)
		}
		commitTree(t, wt, dir, branches[name], "docs for "+name)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: head.Name()}); err != nil {
		t.Fatalf("checkout %s: %v", head.Name(), err)
	}
	return dir
}

// CloneBase clones origin into a fresh directory so every origin branch is
// available as a remote-tracking reference. It returns the clone path.
func CloneBase(t *testing.T, origin string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "base")
	if _, err := git.PlainClone(dir, false, &git.CloneOptions{URL: origin}); err != nil {
		t.Fatalf("clone base: %v", err)
	}
	return dir
}

func commitTree(t *testing.T, wt *git.Worktree, root string, files map[string]string, msg string) {
	t.Helper()
	WriteTree(t, root, files)
	for rel := range files {
		if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
			t.Fatalf("add %s: %v", rel, err)
		}
	}
	sig := signature
	sig.When = time.Now()
	if _, err := wt.Commit(msg, &git.CommitOptions{Author: &sig}); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
