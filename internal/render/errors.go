package render

import "errors"

var (
	// ErrMkDocsNotFound means the mkdocs binary is not on PATH.
	ErrMkDocsNotFound = errors.New("mkdocs binary not found")
	// ErrMkDocsFailed means mkdocs exited non-zero.
	ErrMkDocsFailed = errors.New("mkdocs build failed")
)
