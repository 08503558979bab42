package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists is returned by WriteFile when the target exists and overwrite is false.
var ErrExists = errors.New("file already exists")

// ResolvePath joins rel onto root and rejects results that leave root.
func ResolvePath(root, rel string) (string, error) {
	if root == "" {
		return "", errors.New("root directory is required")
	}
	if rel == "" {
		return "", errors.New("output path is required")
	}
	cleanRel := filepath.Clean(rel)
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q must be relative to %s", rel, root)
	}
	return filepath.Join(root, cleanRel), nil
}

// WriteFile writes content to root/rel, creating parent directories. With
// overwrite false an existing file is left untouched and ErrExists returned.
func WriteFile(root, rel, content string, overwrite bool) (string, error) {
	fullPath, err := ResolvePath(root, rel)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	// #nosec G304 -- fullPath is validated to stay under root.
	file, err := os.OpenFile(fullPath, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrExists, fullPath)
		}
		return "", fmt.Errorf("write output file: %w", err)
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	return fullPath, nil
}
