package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docaggregator.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "docaggregator.yaml" {
			t.Errorf("expected context file=docaggregator.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		base := ConfigError("bad mode").Build()
		wrapped := fmt.Errorf("load: %w", base)

		if !IsClassified(wrapped) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(wrapped, CategoryConfig) {
			t.Error("expected config category")
		}
		if base.CanRetry() {
			t.Error("config errors require user action, not retries")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("plain errors should map to internal")
		}
	})

	t.Run("WithContext does not mutate original", func(t *testing.T) {
		orig := GitError("clone failed").Build()
		derived := orig.WithContext("branch", "docs/alpha")
		if _, ok := orig.Context().Get("branch"); ok {
			t.Error("original context mutated")
		}
		if v, _ := derived.Context().GetString("branch"); v != "docs/alpha" {
			t.Errorf("expected branch context, got %q", v)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("connection reset by peer")
	err := WrapError(originalErr, CategoryNetwork, "network failure").
		Warning().
		Retryable().
		WithContext("url", "https://example.com/repo.git").
		Build()

	if err.RetryStrategy() != RetryBackoff {
		t.Errorf("expected retry strategy %s, got %s", RetryBackoff, err.RetryStrategy())
	}
	if !errors.Is(err, originalErr) {
		t.Error("expected error to wrap original error")
	}
	if !IsRetryable(fmt.Errorf("checkout: %w", err)) {
		t.Error("expected retryable through wrapping")
	}
	if IsRetryable(originalErr) {
		t.Error("unclassified errors are not retryable")
	}
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("issues found").Build(), 2},
		{"manifest", ManifestError("bad manifest").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"git", GitError("clone failed").Build(), 8},
		{"build", BuildError("mkdocs failed").Build(), 11},
		{"internal", InternalError("bug").Build(), 10},
		{"unclassified", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_Handle(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out

	code := adapter.Handle(ValidationError("validation reported 2 issues").WithContext("issues", 2).Build())
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(out.String(), "validation reported 2 issues") {
		t.Errorf("unexpected user message: %q", out.String())
	}
	if !strings.Contains(logs.String(), "category=validation") {
		t.Errorf("expected category in log output, got %q", logs.String())
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	cause := errors.New("exit status 1")
	if got := adapter.FormatError(BuildError("mkdocs build failed").WithCause(cause).Build()); got != "Error: mkdocs build failed: exit status 1" {
		t.Errorf("unexpected build message: %q", got)
	}
	if got := adapter.FormatError(ConfigError("unknown render mode").WithCause(cause).Build()); got != "Error: unknown render mode" {
		t.Errorf("unexpected config message: %q", got)
	}
	if got := adapter.FormatError(errors.New("plain")); got != "Error: plain" {
		t.Errorf("unexpected plain message: %q", got)
	}
}
