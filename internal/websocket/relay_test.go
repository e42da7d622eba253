package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"groupchat-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayLocalOnlyBroadcast(t *testing.T) {
	hub := NewHub(nopLogger{})
	relay := NewRelay(hub, nil, nil, time.Second, nopLogger{})
	require.NoError(t, relay.Start())

	client := newTestClient(hub, 1, 4)
	hub.Subscribe(7, client)

	body := "hi"
	relay.BroadcastMessage(context.Background(), &dto.MessageEnvelope{
		Id:     3,
		RoomId: 7,
		Body:   &body,
		Kind:   "talk",
	})

	raw := <-client.Send
	var frame struct {
		Type string              `json:"type"`
		Data dto.MessageEnvelope `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, dto.FrameMessage, frame.Type)
	assert.Equal(t, uint64(3), frame.Data.Id)
	assert.Equal(t, uint64(7), frame.Data.RoomId)
}

func TestRelayLocalOnlyReaction(t *testing.T) {
	hub := NewHub(nopLogger{})
	relay := NewRelay(hub, nil, nil, time.Second, nopLogger{})

	client := newTestClient(hub, 1, 4)
	hub.Subscribe(7, client)

	relay.BroadcastReaction(context.Background(), &dto.ReactionEvent{
		RoomId:    7,
		MessageId: 3,
		UserId:    1,
		Emoji:     "👍",
	})

	raw := <-client.Send
	var frame struct {
		Type string            `json:"type"`
		Data dto.ReactionEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, dto.FrameReaction, frame.Type)
	assert.Equal(t, "👍", frame.Data.Emoji)
}
