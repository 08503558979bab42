package aggregate

import (
	"strings"

	"git.home.luguber.info/inful/docaggregator/internal/config"
	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/metrics"
	"git.home.luguber.info/inful/docaggregator/internal/source"
)

// SplitList flattens repeated and comma-separated values, dropping blanks.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// NewAcquirer selects the source strategy for mode.
func NewAcquirer(mode source.Mode, baseDir string, localDirs []string, branches config.BranchesConfig, rec metrics.Recorder) (source.Acquirer, error) {
	switch mode {
	case source.ModeLocal:
		dirs := SplitList(localDirs)
		if len(dirs) == 0 {
			return nil, derrors.ConfigError("local mode requires --local-projects").Build()
		}
		return source.NewLocal(dirs), nil
	case source.ModeBranches, "":
		return source.NewBranches(baseDir, branches).WithRecorder(rec), nil
	default:
		return nil, derrors.ConfigError("unknown mode").WithContext("mode", string(mode)).Build()
	}
}
