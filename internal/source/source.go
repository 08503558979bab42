// Package source acquires project documentation snapshots on disk, either from
// local directories or from documentation branches of a git repository.
package source

import (
	"context"
)

// Mode selects the acquisition strategy.
type Mode string

const (
	ModeBranches Mode = "branches"
	ModeLocal    Mode = "local"
)

// Snapshot is one project's source tree, ready for manifest loading.
type Snapshot struct {
	// Root is the directory expected to hold the project manifest.
	Root string
	// Label identifies the source in logs and reports (a path or a branch).
	Label string
	// Branch is set for branch checkouts.
	Branch string
}

// Skip records a source that could not be acquired.
type Skip struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// VisitFunc processes one snapshot. The snapshot is only valid until it returns.
type VisitFunc func(ctx context.Context, snap Snapshot)

// Acquirer yields project snapshots in discovery order.
type Acquirer interface {
	Mode() Mode
	// Walk acquires each source in turn, calls visit, and releases the source
	// before moving on. Sources that cannot be acquired are returned as skips.
	// An error means discovery itself failed.
	Walk(ctx context.Context, visit VisitFunc) ([]Skip, error)
}
