package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// FrameHandler processes one raw broadcast frame.
type FrameHandler func(subject string, data []byte)

// Subscriber listens on the broadcast subjects. Every process runs one;
// each delivers only to its own local connections.
type Subscriber struct {
	nc   *nats.Conn
	subs []*nats.Subscription
}

// NewSubscriber creates a new broadcast subscriber.
func NewSubscriber(url string) (*Subscriber, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Subscriber{nc: nc}, nil
}

// Subscribe registers a handler for a subject pattern. Plain (non-queue)
// subscription: every process instance must see every frame.
func (s *Subscriber) Subscribe(subject string, handler FrameHandler) error {
	sub, err := s.nc.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close drains subscriptions and closes the connection.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Drain()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
