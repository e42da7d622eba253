package service

import (
	"context"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/entity"
	"groupchat-be/internal/pkg/logger"
	"groupchat-be/internal/websocket"
)

// ChatGateway executes websocket commands against the chat services.
// Per-connection state machine: an authenticated connection subscribes
// to room topics with enter/leave and is torn down on disconnect.
type ChatGateway struct {
	hub      *websocket.Hub
	rooms    IRoomService
	chat     IChatService
	presence IPresenceService
	logger   logger.ILogger
}

func NewChatGateway(hub *websocket.Hub, rooms IRoomService, chat IChatService, presence IPresenceService, log logger.ILogger) *ChatGateway {
	return &ChatGateway{
		hub:      hub,
		rooms:    rooms,
		chat:     chat,
		presence: presence,
		logger:   log,
	}
}

func (g *ChatGateway) HandleCommand(ctx context.Context, client *websocket.Client, cmd dto.ClientCommand) {
	if cmd.RoomId == 0 {
		client.SendError("InvalidPayload", "room_id is required", cmd.Action, 0)
		return
	}

	var err error
	switch cmd.Action {
	case dto.ActionSend:
		_, err = g.chat.Submit(ctx, cmd.RoomId, client.UserId, client.Nickname, cmd.Body)
	case dto.ActionEnter:
		err = g.enter(ctx, client, cmd.RoomId)
	case dto.ActionLeave:
		err = g.leave(ctx, client, cmd.RoomId)
	case dto.ActionOnline:
		g.presence.Online(ctx, cmd.RoomId, client.UserId)
	case dto.ActionOffline:
		g.presence.Offline(ctx, cmd.RoomId, client.UserId)
	default:
		client.SendError("InvalidPayload", "unknown action", cmd.Action, cmd.RoomId)
		return
	}

	if err != nil {
		client.SendError(ErrorCode(err), err.Error(), cmd.Action, cmd.RoomId)
	}
}

// enter validates membership, records the subscription, and announces
// the arrival to every subscriber.
func (g *ChatGateway) enter(ctx context.Context, client *websocket.Client, roomId uint64) error {
	if g.hub.IsSubscribed(roomId, client) {
		// Duplicate enter is a no-op, not an announcement.
		return nil
	}

	ok, err := g.rooms.IsActiveMember(ctx, roomId, client.UserId)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAMember
	}

	g.hub.Subscribe(roomId, client)
	g.presence.Online(ctx, roomId, client.UserId)

	if _, err := g.chat.EmitPresenceMessage(ctx, roomId, client.UserId, client.Nickname, entity.KindEnter); err != nil {
		g.logger.Error("ChatGateway", "Failed to persist enter marker", map[string]interface{}{
			"room_id": roomId,
			"user_id": client.UserId,
			"error":   err.Error(),
		})
	}
	return nil
}

// leave unsubscribes the connection and announces the departure. The
// membership row is untouched; REST join/leave owns it.
func (g *ChatGateway) leave(ctx context.Context, client *websocket.Client, roomId uint64) error {
	if !g.hub.IsSubscribed(roomId, client) {
		return nil
	}

	g.hub.Unsubscribe(roomId, client)
	g.presence.Offline(ctx, roomId, client.UserId)

	if _, err := g.chat.EmitPresenceMessage(ctx, roomId, client.UserId, client.Nickname, entity.KindLeave); err != nil {
		g.logger.Error("ChatGateway", "Failed to persist leave marker", map[string]interface{}{
			"room_id": roomId,
			"user_id": client.UserId,
			"error":   err.Error(),
		})
	}
	return nil
}

// HandleDisconnect clears subscriptions and presence hints only. A
// network drop is not a leave: no leave marker, no membership change.
func (g *ChatGateway) HandleDisconnect(ctx context.Context, client *websocket.Client) {
	roomIds := g.hub.DropClient(client)
	for _, roomId := range roomIds {
		g.presence.Offline(ctx, roomId, client.UserId)
	}
}
