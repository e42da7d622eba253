package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"groupchat-be/internal/pkg/logger"
	"groupchat-be/internal/repository/memory"

	"github.com/redis/go-redis/v9"
)

// IPresenceService tracks ephemeral online/offline hints. Presence never
// touches membership rows; a dropped socket is not a group departure.
type IPresenceService interface {
	Online(ctx context.Context, roomId, userId uint64)
	Offline(ctx context.Context, roomId, userId uint64)
	ListOnline(ctx context.Context, roomId uint64) ([]uint64, error)
}

type presenceService struct {
	rdb    *redis.Client
	local  *memory.PresenceRepository
	ttl    time.Duration
	logger logger.ILogger
}

// NewPresenceService uses Redis TTL keys for cross-instance hints; with
// no Redis configured it degrades to a process-local cache with the
// same expiry semantics.
func NewPresenceService(rdb *redis.Client, ttl time.Duration, log logger.ILogger) IPresenceService {
	return &presenceService{
		rdb:    rdb,
		local:  memory.NewPresenceRepository(ttl),
		ttl:    ttl,
		logger: log,
	}
}

func presenceKey(roomId, userId uint64) string {
	return fmt.Sprintf("presence:%d:%d", roomId, userId)
}

func (s *presenceService) Online(ctx context.Context, roomId, userId uint64) {
	if s.rdb == nil {
		s.local.Set(roomId, userId)
		return
	}
	if err := s.rdb.Set(ctx, presenceKey(roomId, userId), 1, s.ttl).Err(); err != nil {
		s.logger.Warn("Presence", "Failed to set online hint", map[string]interface{}{
			"room_id": roomId,
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *presenceService) Offline(ctx context.Context, roomId, userId uint64) {
	if s.rdb == nil {
		s.local.Delete(roomId, userId)
		return
	}
	if err := s.rdb.Del(ctx, presenceKey(roomId, userId)).Err(); err != nil {
		s.logger.Warn("Presence", "Failed to clear online hint", map[string]interface{}{
			"room_id": roomId,
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *presenceService) ListOnline(ctx context.Context, roomId uint64) ([]uint64, error) {
	if s.rdb == nil {
		return s.local.List(roomId), nil
	}

	prefix := fmt.Sprintf("presence:%d:", roomId)
	userIds := make([]uint64, 0)

	iter := s.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		userId, err := strconv.ParseUint(strings.TrimPrefix(iter.Val(), prefix), 10, 64)
		if err != nil {
			continue
		}
		userIds = append(userIds, userId)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return userIds, nil
}
