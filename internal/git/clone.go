package git

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/retry"
)

// Client performs shallow single-branch clones.
type Client struct {
	depth  int
	policy retry.Policy
}

// NewClient returns a client cloning with the given depth (minimum 1).
func NewClient(depth int, policy retry.Policy) *Client {
	if depth < 1 {
		depth = 1
	}
	return &Client{depth: depth, policy: policy}
}

// CloneResult describes a finished checkout.
type CloneResult struct {
	Path     string
	Commit   string
	Attempts int
	Duration time.Duration
}

// CloneBranch clones branch of url into dest. Any existing directory at dest
// is removed first. Retryable failures are attempted again per the client's
// policy; the final error carries the transport output under "output".
func (c *Client) CloneBranch(ctx context.Context, url, branch, dest string) (CloneResult, error) {
	start := time.Now()
	res := CloneResult{Path: dest}

	op := func() error {
		res.Attempts++
		if res.Attempts > 1 {
			slog.Warn("Retrying clone", logfields.Branch(branch), slog.Int("attempt", res.Attempts))
		}
		commit, err := c.cloneOnce(ctx, url, branch, dest)
		if err != nil {
			if !errors.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		res.Commit = commit
		return nil
	}

	err := backoff.Retry(op, c.policy.BackOff(ctx))
	res.Duration = time.Since(start)
	if err != nil {
		_ = os.RemoveAll(dest)
		return res, err
	}
	slog.Info("Branch cloned",
		logfields.Branch(branch),
		logfields.Path(dest),
		slog.String("commit", shortHash(res.Commit)),
		logfields.Duration(res.Duration))
	return res, nil
}

func (c *Client) cloneOnce(ctx context.Context, url, branch, dest string) (string, error) {
	if err := os.RemoveAll(dest); err != nil {
		return "", errors.FileSystemError("remove stale checkout").WithCause(err).WithContext("path", dest).Build()
	}

	var progress bytes.Buffer
	slog.Debug("Cloning branch", logfields.URL(url), logfields.Branch(branch), logfields.Path(dest))
	repo, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:           url,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         c.depth,
		Tags:          git.NoTags,
		Progress:      &progress,
	})
	if err != nil {
		classified := ClassifyGitError(err, "clone", url)
		if ce, ok := errors.AsClassified(classified); ok {
			classified = ce.WithContext("branch", branch).WithContext("output", progress.String())
		}
		return "", classified
	}
	head, err := repo.Head()
	if err != nil {
		return "", nil
	}
	return head.Hash().String(), nil
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
