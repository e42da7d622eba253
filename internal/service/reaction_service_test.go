package service

import (
	"context"
	"strings"
	"testing"

	"groupchat-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReactionFixture(t *testing.T) (IReactionService, uint64) {
	t.Helper()
	store := newFakeStore()
	chat := NewChatService(store.factory(), localRelay(), 4000, testLogger{})
	rooms := NewRoomService(store.factory(), chat)
	reactions := NewReactionService(store.factory(), localRelay())

	ctx := context.Background()
	room, err := rooms.CreateRoom(ctx, 1, &dto.CreateRoomRequest{GroupId: 7, Name: "General"})
	require.NoError(t, err)
	_, err = rooms.Join(ctx, room.Id, 2)
	require.NoError(t, err)

	env, err := chat.Submit(ctx, room.Id, 1, "alice", "react to this")
	require.NoError(t, err)
	return reactions, env.Id
}

func TestAddAndSummarizeReactions(t *testing.T) {
	reactions, messageId := newReactionFixture(t)
	ctx := context.Background()

	res, err := reactions.Add(ctx, messageId, 1, "👍")
	require.NoError(t, err)
	require.Len(t, res.Summaries, 1)
	assert.Equal(t, 1, res.Summaries[0].Count)

	res, err = reactions.Add(ctx, messageId, 2, "👍")
	require.NoError(t, err)
	require.Len(t, res.Summaries, 1)
	assert.Equal(t, 2, res.Summaries[0].Count)
	assert.ElementsMatch(t, []uint64{1, 2}, res.Summaries[0].UserIds)

	res, err = reactions.Add(ctx, messageId, 2, "🎉")
	require.NoError(t, err)
	assert.Len(t, res.Summaries, 2)
}

func TestAddDuplicateReaction(t *testing.T) {
	reactions, messageId := newReactionFixture(t)
	ctx := context.Background()

	_, err := reactions.Add(ctx, messageId, 1, "👍")
	require.NoError(t, err)

	_, err = reactions.Add(ctx, messageId, 1, "👍")
	assert.ErrorIs(t, err, ErrDuplicateReaction)
}

func TestAddReactionValidation(t *testing.T) {
	reactions, messageId := newReactionFixture(t)
	ctx := context.Background()

	_, err := reactions.Add(ctx, messageId, 1, "")
	assert.ErrorIs(t, err, ErrEmojiTooLong)

	_, err = reactions.Add(ctx, messageId, 1, strings.Repeat("x", 33))
	assert.ErrorIs(t, err, ErrEmojiTooLong)
}

func TestAddReactionUnknownMessage(t *testing.T) {
	reactions, _ := newReactionFixture(t)

	_, err := reactions.Add(context.Background(), 9999, 1, "👍")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestAddReactionRequiresMembership(t *testing.T) {
	reactions, messageId := newReactionFixture(t)

	_, err := reactions.Add(context.Background(), messageId, 99, "👍")
	assert.ErrorIs(t, err, ErrNotAMember)
}

func TestSummarizeRequiresMembership(t *testing.T) {
	reactions, messageId := newReactionFixture(t)
	ctx := context.Background()

	_, err := reactions.Add(ctx, messageId, 1, "👍")
	require.NoError(t, err)

	summaries, err := reactions.Summarize(ctx, messageId, 2)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Count)

	// Reading reactions carries the same precondition as writing them.
	_, err = reactions.Summarize(ctx, messageId, 99)
	assert.ErrorIs(t, err, ErrNotAMember)

	_, err = reactions.Summarize(ctx, 9999, 1)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestRemoveReaction(t *testing.T) {
	reactions, messageId := newReactionFixture(t)
	ctx := context.Background()

	_, err := reactions.Add(ctx, messageId, 1, "👍")
	require.NoError(t, err)
	_, err = reactions.Add(ctx, messageId, 2, "👍")
	require.NoError(t, err)

	res, err := reactions.Remove(ctx, messageId, 1, "👍")
	require.NoError(t, err)
	require.Len(t, res.Summaries, 1)
	assert.Equal(t, 1, res.Summaries[0].Count)
	assert.Equal(t, []uint64{2}, res.Summaries[0].UserIds)

	// Removing again is an error, not a no-op.
	_, err = reactions.Remove(ctx, messageId, 1, "👍")
	assert.ErrorIs(t, err, ErrReactionNotFound)
}

func TestListByMessages(t *testing.T) {
	reactions, messageId := newReactionFixture(t)
	ctx := context.Background()

	_, err := reactions.Add(ctx, messageId, 1, "👍")
	require.NoError(t, err)

	byMessage, err := reactions.ListByMessages(ctx, []uint64{messageId, 9999})
	require.NoError(t, err)
	assert.Len(t, byMessage[messageId], 1)
	assert.Empty(t, byMessage[9999])

	empty, err := reactions.ListByMessages(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
