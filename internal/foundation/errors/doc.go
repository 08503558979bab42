// Package errors provides the classified error primitives shared by the aggregator.
//
// A ClassifiedError carries a category (what failed), a severity (how much it
// matters to the run) and a retry strategy (whether trying again can help). The
// fluent ErrorBuilder constructs them and CLIErrorAdapter turns them into exit codes.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryGit, "clone failed").
//		WithRetry(errors.RetryBackoff).
//		WithContext("branch", branch).
//		WithCause(originalErr).
//		Build()
package errors
