package service

import (
	"context"
	"testing"
	"time"

	"groupchat-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMessages(store *fakeStore, roomId uint64, ages ...time.Duration) {
	now := time.Now()
	for _, age := range ages {
		store.nextMessageId++
		body := "old news"
		store.messages = append(store.messages, &entity.Message{
			Id:        store.nextMessageId,
			RoomId:    roomId,
			UserId:    1,
			Body:      &body,
			Kind:      entity.KindTalk,
			CreatedAt: now.Add(-age),
		})
	}
}

func TestRetentionSweepDeletesOldMessages(t *testing.T) {
	store := newFakeStore()
	seedMessages(store, 1, 72*time.Hour, 48*time.Hour, time.Hour)
	seedMessages(store, 2, 72*time.Hour)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	retention := NewRetentionService(pubSub, store.factory(), nil, testLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, retention.Consume(ctx))

	cutoff := time.Now().Add(-24 * time.Hour)
	require.NoError(t, retention.RequestSweep(ctx, 0, cutoff))

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.messages) == 1
	}, 2*time.Second, 10*time.Millisecond, "sweep should keep only the recent message")
}

func TestRetentionSweepScopedToRoom(t *testing.T) {
	store := newFakeStore()
	seedMessages(store, 1, 72*time.Hour)
	seedMessages(store, 2, 72*time.Hour)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	retention := NewRetentionService(pubSub, store.factory(), nil, testLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, retention.Consume(ctx))

	cutoff := time.Now().Add(-24 * time.Hour)
	require.NoError(t, retention.RequestSweep(ctx, 1, cutoff))

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.messages) == 1 && store.messages[0].RoomId == 2
	}, 2*time.Second, 10*time.Millisecond, "sweep must only touch the requested room")
}
