package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

// Scheduler wraps a gocron scheduler issuing periodic run requests.
type Scheduler struct {
	scheduler gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// ScheduleInterval sends an "interval" request to out every interval. A tick
// that finds out full is dropped, since a request is already pending.
func (s *Scheduler) ScheduleInterval(ctx context.Context, interval time.Duration, out chan<- string) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			select {
			case out <- "interval":
			case <-ctx.Done():
			default:
				slog.Debug("Interval tick dropped, run already requested")
			}
		}),
		gocron.WithName("aggregate-interval"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create interval job: %w", err)
	}
	slog.Info("Scheduled periodic aggregation", logfields.Duration(interval))
	return job.ID().String(), nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
