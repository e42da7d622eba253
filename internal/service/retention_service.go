package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/pkg/logger"
	"groupchat-be/internal/repository/specification"
	"groupchat-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const retentionTopic = "CHAT_RETENTION_SWEEP"

// IRetentionService owns the bulk retention sweep: the only delete path
// of the message log, carried over the in-process bus so a sweep never
// blocks the request that asked for it.
type IRetentionService interface {
	RequestSweep(ctx context.Context, roomId uint64, cutoff time.Time) error
	Consume(ctx context.Context) error
	// StartTicker publishes periodic sweeps when a retention window is
	// configured. retentionDays 0 disables it.
	StartTicker(ctx context.Context, retentionDays, sweepHours int)
}

type retentionService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	notices    ISystemNoticeEmitter
	logger     logger.ILogger
}

func NewRetentionService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	notices ISystemNoticeEmitter,
	log logger.ILogger,
) IRetentionService {
	return &retentionService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		notices:    notices,
		logger:     log,
	}
}

func (s *retentionService) RequestSweep(ctx context.Context, roomId uint64, cutoff time.Time) error {
	payload, err := json.Marshal(dto.RetentionSweepMessage{
		RoomId: roomId,
		Cutoff: cutoff,
	})
	if err != nil {
		return err
	}
	return s.pubSub.Publish(retentionTopic, message.NewMessage(watermill.NewUUID(), payload))
}

func (s *retentionService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, retentionTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processSweep(ctx, msg)
		}
	}()

	return nil
}

func (s *retentionService) processSweep(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.RetentionSweepMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("Retention", "Failed to unmarshal sweep request", map[string]interface{}{"error": err.Error()})
		return
	}

	specs := []specification.Specification{
		specification.CreatedBefore{Instant: payload.Cutoff},
	}
	if payload.RoomId > 0 {
		specs = append(specs, specification.ByRoomID{RoomID: payload.RoomId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.MessageRepository().DeleteWhere(ctx, specs...)
	if err != nil {
		s.logger.Error("Retention", "Sweep failed", map[string]interface{}{
			"room_id": payload.RoomId,
			"error":   err.Error(),
		})
		return
	}

	s.logger.Info("Retention", "Sweep completed", map[string]interface{}{
		"room_id": payload.RoomId,
		"cutoff":  payload.Cutoff,
		"deleted": deleted,
	})

	if deleted > 0 && payload.RoomId > 0 && s.notices != nil {
		text := fmt.Sprintf("Messages older than %s were removed by the retention policy.", payload.Cutoff.Format("2006-01-02"))
		s.notices.EmitSystemNotice(ctx, payload.RoomId, text, map[string]interface{}{
			"event":   "retention_sweep",
			"deleted": deleted,
		})
	}
}

func (s *retentionService) StartTicker(ctx context.Context, retentionDays, sweepHours int) {
	if retentionDays <= 0 {
		return
	}
	if sweepHours <= 0 {
		sweepHours = 24
	}

	go func() {
		ticker := time.NewTicker(time.Duration(sweepHours) * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				// RoomId 0 sweeps every room in one pass.
				if err := s.RequestSweep(ctx, 0, cutoff); err != nil {
					s.logger.Error("Retention", "Failed to request periodic sweep", map[string]interface{}{"error": err.Error()})
				}
			}
		}
	}()
}
