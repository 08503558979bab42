package git

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

// DiscoverBranches lists remote-tracking branches of remote whose short name
// starts with prefix, returned without the remote part (e.g. "docs/payments")
// and sorted by name.
func DiscoverBranches(baseDir, remote, prefix string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(baseDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, ClassifyGitError(err, "open", baseDir)
	}
	refs, err := repo.References()
	if err != nil {
		return nil, ClassifyGitError(err, "list references", baseDir)
	}
	defer refs.Close()

	want := plumbing.NewRemoteReferenceName(remote, prefix).String()
	var branches []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if !name.IsRemote() || !strings.HasPrefix(name.String(), want) {
			return nil
		}
		branch := strings.TrimPrefix(name.String(), "refs/remotes/"+remote+"/")
		if branch == "HEAD" {
			return nil
		}
		branches = append(branches, branch)
		return nil
	})
	if err != nil {
		return nil, ClassifyGitError(err, "list references", baseDir)
	}
	sort.Strings(branches)
	for _, b := range branches {
		slog.Info("Found documentation branch", logfields.Branch(b))
	}
	return branches, nil
}

// CloneSource returns the URL branches should be cloned from: the configured
// URL of remote in the base repository, or baseDir itself when the remote is
// missing. Relative local URLs are resolved against baseDir.
func CloneSource(baseDir, remote string) (string, error) {
	repo, err := git.PlainOpenWithOptions(baseDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", ClassifyGitError(err, "open", baseDir)
	}
	r, err := repo.Remote(remote)
	if err != nil || len(r.Config().URLs) == 0 {
		abs, aerr := filepath.Abs(baseDir)
		if aerr != nil {
			return "", fmt.Errorf("resolve base dir: %w", aerr)
		}
		slog.Debug("Remote not configured, cloning from base repository", logfields.Source(remote), logfields.Path(abs))
		return abs, nil
	}
	url := r.Config().URLs[0]
	if isRelativeLocalPath(url) {
		url = filepath.Join(baseDir, url)
	}
	return url, nil
}

func isRelativeLocalPath(url string) bool {
	if strings.Contains(url, "://") || filepath.IsAbs(url) {
		return false
	}
	// scp-like syntax: user@host:path
	if i := strings.Index(url, ":"); i > 0 && !strings.Contains(url[:i], "/") {
		return false
	}
	return true
}
