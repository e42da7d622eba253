package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/pkg/logger"
	pktNats "groupchat-be/pkg/nats"
)

const roomSubjectPrefix = "chat.room."

// RoomSubject is the broadcast subject for one room's live frames.
func RoomSubject(roomId uint64) string {
	return fmt.Sprintf("%s%d", roomSubjectPrefix, roomId)
}

// Relay bridges the hub and the shared broadcast channel. Publishes are
// best-effort with a bounded timeout; persistence correctness never
// depends on the transport being available. When no broadcast transport
// is configured the relay degrades to local-only delivery.
type Relay struct {
	hub     *Hub
	pub     *pktNats.Publisher
	sub     *pktNats.Subscriber
	timeout time.Duration
	logger  logger.ILogger
}

func NewRelay(hub *Hub, pub *pktNats.Publisher, sub *pktNats.Subscriber, publishTimeout time.Duration, log logger.ILogger) *Relay {
	return &Relay{
		hub:     hub,
		pub:     pub,
		sub:     sub,
		timeout: publishTimeout,
		logger:  log,
	}
}

// Start subscribes this process to every room subject. Each relay
// instance delivers incoming frames to its own local connections only.
func (r *Relay) Start() error {
	if r.sub == nil {
		r.logger.Warn("Relay", "No broadcast subscriber configured, running local-only", nil)
		return nil
	}
	return r.sub.Subscribe(roomSubjectPrefix+">", func(subject string, data []byte) {
		roomId, err := strconv.ParseUint(strings.TrimPrefix(subject, roomSubjectPrefix), 10, 64)
		if err != nil {
			r.logger.Warn("Relay", "Frame on unparsable subject", map[string]interface{}{"subject": subject})
			return
		}
		r.hub.DeliverLocal(roomId, data)
	})
}

// BroadcastMessage publishes a persisted message envelope to the room's
// subject. A publish failure is logged and swallowed: the message is
// already the system of record and re-fetching history recovers it.
func (r *Relay) BroadcastMessage(ctx context.Context, env *dto.MessageEnvelope) {
	r.broadcast(ctx, env.RoomId, dto.FrameMessage, env)
}

// BroadcastReaction publishes a reaction change the same way.
func (r *Relay) BroadcastReaction(ctx context.Context, ev *dto.ReactionEvent) {
	r.broadcast(ctx, ev.RoomId, dto.FrameReaction, ev)
}

func (r *Relay) broadcast(ctx context.Context, roomId uint64, frameType string, data interface{}) {
	raw, err := json.Marshal(dto.ServerFrame{Type: frameType, Data: data})
	if err != nil {
		r.logger.Error("Relay", "Failed to marshal broadcast frame", map[string]interface{}{"error": err.Error()})
		return
	}

	if r.pub == nil {
		// Local-only mode: no other process can have subscribers.
		r.hub.DeliverLocal(roomId, raw)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.pub.Publish(pubCtx, RoomSubject(roomId), raw); err != nil {
		// At-most-once: dropped, not retried, never surfaced to the
		// sender.
		r.logger.Error("Relay", "Broadcast publish failed, live push lost", map[string]interface{}{
			"room_id": roomId,
			"error":   err.Error(),
		})
	}
}
