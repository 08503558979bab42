package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

// Local walks project directories that already exist on disk.
type Local struct {
	dirs []string
}

// NewLocal returns an acquirer over dirs, visited in the given order.
func NewLocal(dirs []string) *Local {
	return &Local{dirs: dirs}
}

func (l *Local) Mode() Mode { return ModeLocal }

func (l *Local) Walk(ctx context.Context, visit VisitFunc) ([]Skip, error) {
	var skipped []Skip
	for _, dir := range l.dirs {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}
		st, err := os.Stat(dir)
		if err != nil || !st.IsDir() {
			slog.Warn("Project directory not found", logfields.Path(dir))
			skipped = append(skipped, Skip{Source: dir, Reason: "directory not found"})
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		visit(ctx, Snapshot{Root: abs, Label: dir})
	}
	return skipped, nil
}
