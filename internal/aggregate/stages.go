package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/docaggregator/internal/metrics"
)

// StageName identifies a run stage.
type StageName string

const (
	StagePrepare  StageName = "prepare_output"
	StageCollect  StageName = "collect_projects"
	StageCompose  StageName = "compose_site"
	StageValidate StageName = "validate"
	StageBuild    StageName = "build_site"
)

// Stage is a discrete unit of work in a run.
type Stage func(ctx context.Context, st *State) error

type stageDef struct {
	name StageName
	fn   Stage
}

// StageErrorKind enumerates stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"
	StageErrorCanceled StageErrorKind = "canceled"
)

// StageError wraps the error that stopped a run.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// runStages executes stages in order, recording timings and stopping on the
// first error.
func runStages(ctx context.Context, st *State, rec metrics.Recorder, stages []stageDef) error {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			rec.IncStageResult(string(s.name), metrics.ResultCanceled)
			return &StageError{Kind: StageErrorCanceled, Stage: s.name, Err: err}
		}
		t0 := time.Now()
		err := s.fn(ctx, st)
		dur := time.Since(t0)
		st.Timings[s.name] = dur
		rec.ObserveStageDuration(string(s.name), dur)
		if err == nil {
			rec.IncStageResult(string(s.name), metrics.ResultSuccess)
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			rec.IncStageResult(string(s.name), metrics.ResultCanceled)
			return &StageError{Kind: StageErrorCanceled, Stage: s.name, Err: err}
		}
		rec.IncStageResult(string(s.name), metrics.ResultFatal)
		return &StageError{Kind: StageErrorFatal, Stage: s.name, Err: err}
	}
	return nil
}
