package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher pushes live chat envelopes onto the broadcast subjects.
// Core NATS only: the channel is best-effort at-most-once and carries
// no replay log; reconnecting clients recover through history, not here.
type Publisher struct {
	nc *nats.Conn
}

// NewPublisher creates a new broadcast publisher.
func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{nc: nc}, nil
}

// Publish sends a payload to a subject and flushes within the context
// deadline. A deadline hit is the caller's signal to log and drop.
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush publish to subject %s: %w", subject, err)
	}
	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
