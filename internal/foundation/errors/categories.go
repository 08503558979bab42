package errors

import "maps"

// ErrorCategory groups errors by the part of an aggregation run that produced
// them. The CLI adapter maps categories onto exit codes.
type ErrorCategory string

// Input problems the operator has to fix.
const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryManifest   ErrorCategory = "manifest"
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryAuth       ErrorCategory = "auth"
)

// Source acquisition.
const (
	CategoryNetwork ErrorCategory = "network"
	CategoryGit     ErrorCategory = "git"
)

// Output side: copying content, composing and building the site.
const (
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// userFacing reports whether the category describes bad input rather than a
// failure of the tool or its environment.
func (c ErrorCategory) userFacing() bool {
	switch c {
	case CategoryConfig, CategoryValidation, CategoryManifest, CategoryNotFound, CategoryAuth:
		return true
	default:
		return false
	}
}

// ErrorSeverity decides how loudly the CLI adapter logs an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // aborts the run
	SeverityError   ErrorSeverity = "error"   // drops one project or stage
	SeverityWarning ErrorSeverity = "warning" // output is degraded
	SeverityInfo    ErrorSeverity = "info"
)

// RetryStrategy tells the retry policy whether trying again can help.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"
	RetryBackoff    RetryStrategy = "backoff"
	RetryRateLimit  RetryStrategy = "rate_limit"
	RetryUserAction RetryStrategy = "user"
)

// ErrorContext holds the structured attributes logged with an error
// (branch, path, slug and so on).
type ErrorContext map[string]any

// Set stores value under key, allocating the map when needed.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = ErrorContext{}
	}
	c[key] = value
	return c
}

func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// With returns a copy of c carrying key. The receiver is left untouched.
func (c ErrorContext) With(key string, value any) ErrorContext {
	out := make(ErrorContext, len(c)+1)
	maps.Copy(out, c)
	out[key] = value
	return out
}
