package service

import (
	"context"
	"strings"
	"testing"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(t *testing.T) (IChatService, uint64, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	chat := NewChatService(store.factory(), localRelay(), 4000, testLogger{})
	rooms := NewRoomService(store.factory(), chat)

	room, err := rooms.CreateRoom(context.Background(), 1, &dto.CreateRoomRequest{
		GroupId: 7,
		Name:    "General",
	})
	require.NoError(t, err)
	return chat, room.Id, store
}

func TestSubmitPersistsAndAssignsOrderedIds(t *testing.T) {
	chat, roomId, store := newChatFixture(t)
	ctx := context.Background()

	first, err := chat.Submit(ctx, roomId, 1, "alice", "hello")
	require.NoError(t, err)
	second, err := chat.Submit(ctx, roomId, 1, "alice", "world")
	require.NoError(t, err)

	assert.Greater(t, second.Id, first.Id, "ids must be monotonic in append order")
	assert.Equal(t, "alice", first.AuthorNickname)
	require.NotNil(t, first.Body)
	assert.Equal(t, "hello", *first.Body)
	assert.Equal(t, string(entity.KindTalk), first.Kind)

	require.Len(t, store.messages, 2)
}

func TestSubmitAdvancesSenderReadPointer(t *testing.T) {
	chat, roomId, store := newChatFixture(t)

	env, err := chat.Submit(context.Background(), roomId, 1, "alice", "hello")
	require.NoError(t, err)

	require.Len(t, store.members, 1)
	require.NotNil(t, store.members[0].LastReadMsgId)
	assert.Equal(t, env.Id, *store.members[0].LastReadMsgId)
}

func TestSubmitValidation(t *testing.T) {
	chat, roomId, store := newChatFixture(t)
	ctx := context.Background()

	_, err := chat.Submit(ctx, roomId, 1, "alice", "")
	assert.ErrorIs(t, err, ErrEmptyBody)

	_, err = chat.Submit(ctx, roomId, 1, "alice", strings.Repeat("x", 4001))
	assert.ErrorIs(t, err, ErrBodyTooLong)

	// Rune count, not byte count: 4000 multibyte runes must pass.
	_, err = chat.Submit(ctx, roomId, 1, "alice", strings.Repeat("ä", 4000))
	assert.NoError(t, err)

	// Rejected sends never reach the log.
	assert.Len(t, store.messages, 1)
}

func TestSubmitRejectsNonMember(t *testing.T) {
	chat, roomId, store := newChatFixture(t)

	_, err := chat.Submit(context.Background(), roomId, 99, "mallory", "hi")
	assert.ErrorIs(t, err, ErrNotAMember)
	assert.Empty(t, store.messages)
}

func TestSubmitRejectsFormerMember(t *testing.T) {
	store := newFakeStore()
	chat := NewChatService(store.factory(), localRelay(), 4000, testLogger{})
	rooms := NewRoomService(store.factory(), chat)
	ctx := context.Background()

	room, err := rooms.CreateRoom(ctx, 1, &dto.CreateRoomRequest{GroupId: 7, Name: "General"})
	require.NoError(t, err)
	_, err = rooms.Join(ctx, room.Id, 2)
	require.NoError(t, err)
	require.NoError(t, rooms.Leave(ctx, room.Id, 2))

	// An inactive membership row is not a membership.
	logged := len(store.messages)
	_, err = chat.Submit(ctx, room.Id, 2, "bob", "still here?")
	assert.ErrorIs(t, err, ErrNotAMember)
	assert.Len(t, store.messages, logged)
}

func TestEmitPresenceMessageRendersBody(t *testing.T) {
	chat, roomId, _ := newChatFixture(t)
	ctx := context.Background()

	enter, err := chat.EmitPresenceMessage(ctx, roomId, 1, "alice", entity.KindEnter)
	require.NoError(t, err)
	require.NotNil(t, enter.Body)
	assert.Equal(t, "alice entered", *enter.Body)
	assert.Equal(t, string(entity.KindEnter), enter.Kind)

	leave, err := chat.EmitPresenceMessage(ctx, roomId, 1, "alice", entity.KindLeave)
	require.NoError(t, err)
	require.NotNil(t, leave.Body)
	assert.Equal(t, "alice left", *leave.Body)
}

func TestEmitSystemNotice(t *testing.T) {
	chat, roomId, store := newChatFixture(t)

	chat.EmitSystemNotice(context.Background(), roomId, "Maintenance at midnight", map[string]interface{}{
		"event": "maintenance",
	})

	require.Len(t, store.messages, 1)
	notice := store.messages[0]
	assert.Equal(t, entity.KindNotice, notice.Kind)
	assert.Equal(t, uint64(0), notice.UserId)
	assert.Equal(t, "system", notice.AuthorNickname)
	require.NotNil(t, notice.Body)
	assert.Equal(t, "Maintenance at midnight", *notice.Body)
	assert.Equal(t, "maintenance", notice.Metadata["event"])
}
