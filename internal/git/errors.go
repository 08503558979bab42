package git

import (
	"strings"

	"git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
)

// ClassifyGitError translates go-git errors into ClassifiedErrors.
func ClassifyGitError(err error, op, url string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	l := strings.ToLower(err.Error())
	builder := errors.GitError("git " + op + " failed").
		WithCause(err).
		WithContext("op", op).
		WithContext("url", url)

	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "not authorized") || strings.Contains(l, "invalid credentials") || strings.Contains(l, "permission denied"):
		builder.WithCategory(errors.CategoryAuth)
	case strings.Contains(l, "couldn't find remote ref") || strings.Contains(l, "reference not found") || strings.Contains(l, "repository not found") || strings.Contains(l, "repository does not exist"):
		builder.WithCategory(errors.CategoryNotFound)
	case strings.Contains(l, "rate limit") || strings.Contains(l, "too many requests"):
		builder.WithCategory(errors.CategoryNetwork).RateLimit()
	case strings.Contains(l, "remote hung up") || strings.Contains(l, "connection reset") || strings.Contains(l, "connection refused") || strings.Contains(l, "timeout") || strings.Contains(l, "no route to host") || strings.Contains(l, "eof"):
		builder.WithCategory(errors.CategoryNetwork).Retryable()
	case strings.Contains(l, "unsupported protocol") || strings.Contains(l, "protocol not supported"):
		builder.WithCategory(errors.CategoryConfig)
	}
	return builder.Build()
}
