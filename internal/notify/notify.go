// Package notify publishes run-completed events to NATS.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docaggregator/internal/config"
	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

const connectTimeout = 5 * time.Second

// Publisher delivers a JSON-encodable event.
type Publisher interface {
	Publish(ctx context.Context, event any) error
	Close() error
}

// NATSPublisher publishes core NATS messages on a fixed subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to cfg.NATSURL.
func NewNATSPublisher(cfg config.NotifyConfig) (*NATSPublisher, error) {
	if cfg.NATSURL == "" {
		return nil, derrors.ConfigError("notify.nats_url is not set").Build()
	}
	subject := cfg.Subject
	if subject == "" {
		subject = config.DefaultSubject
	}

	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("docaggregator"),
		nats.Timeout(connectTimeout),
	)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryNetwork, "failed to connect to NATS").
			WithContext("url", cfg.NATSURL).
			Build()
	}

	slog.Info("NATS notifications enabled", logfields.URL(cfg.NATSURL), slog.String("subject", subject))
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Publish marshals event to JSON and flushes it to the server.
func (p *NATSPublisher) Publish(ctx context.Context, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}
	slog.Debug("Published run event", slog.String("subject", p.subject), slog.Int("bytes", len(data)))
	return nil
}

func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// Send publishes event with a bounded wait. Failures are logged and never
// returned; a notification must not change the run outcome.
func Send(ctx context.Context, p Publisher, event any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := p.Publish(ctx, event); err != nil {
		slog.Warn("Run notification failed", logfields.Error(err))
	}
}
