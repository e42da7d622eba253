package handler

import (
	"strconv"
	"time"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/pkg/logger"
	"groupchat-be/internal/pkg/serverutils"
	"groupchat-be/internal/service"
	internalWS "groupchat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type ChatHandler struct {
	hub       *internalWS.Hub
	gateway   *service.ChatGateway
	rooms     service.IRoomService
	history   service.IHistoryService
	reactions service.IReactionService
	presence  service.IPresenceService
	retention service.IRetentionService
	logger    logger.ILogger
}

func NewChatHandler(
	hub *internalWS.Hub,
	gateway *service.ChatGateway,
	rooms service.IRoomService,
	history service.IHistoryService,
	reactions service.IReactionService,
	presence service.IPresenceService,
	retention service.IRetentionService,
	log logger.ILogger,
) *ChatHandler {
	return &ChatHandler{
		hub:       hub,
		gateway:   gateway,
		rooms:     rooms,
		history:   history,
		reactions: reactions,
		presence:  presence,
		retention: retention,
		logger:    log,
	}
}

// ServeWs authenticates a websocket handshake and hands the connection
// to the session gateway.
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on websocket handshakes, so query
	// param takes priority and the Authorization header covers tooling.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	principal, err := serverutils.ResolveToken(tokenStr)
	if err != nil {
		h.logger.Warn("ChatHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatHandler", "Starting chat session", map[string]interface{}{"user_id": principal.UserId})
			internalWS.ServeWs(h.hub, conn, principal.UserId, principal.Nickname, h.gateway)
			h.logger.Info("ChatHandler", "Chat session ended", map[string]interface{}{"user_id": principal.UserId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetHistory returns a page of the room's message log, newest first.
func (h *ChatHandler) GetHistory(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	roomId, err := strconv.ParseUint(ctx.Params("roomId"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}

	before := ctx.QueryInt("before", 0)
	if before < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "before must not be negative")
	}
	beforeId := uint64(before)
	pageSize := ctx.QueryInt("limit", 0)

	res, err := h.history.GetMessages(ctx.UserContext(), roomId, principal.UserId, beforeId, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get message history", res))
}

// AddReaction attaches an emoji reaction to a message.
func (h *ChatHandler) AddReaction(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	messageId, err := strconv.ParseUint(ctx.Params("messageId"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	var req dto.AddReactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := h.reactions.Add(ctx.UserContext(), messageId, principal.UserId, req.Emoji)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add reaction", res))
}

// RemoveReaction removes the caller's reaction from a message.
func (h *ChatHandler) RemoveReaction(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	messageId, err := strconv.ParseUint(ctx.Params("messageId"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	emoji := ctx.Query("emoji")
	if emoji == "" {
		return fiber.NewError(fiber.StatusBadRequest, "emoji query param is required")
	}

	res, err := h.reactions.Remove(ctx.UserContext(), messageId, principal.UserId, emoji)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove reaction", res))
}

// GetReactions returns the reaction summary of a single message.
func (h *ChatHandler) GetReactions(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	messageId, err := strconv.ParseUint(ctx.Params("messageId"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	res, err := h.reactions.Summarize(ctx.UserContext(), messageId, principal.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get reactions", res))
}

// GetPresence lists the users currently online in a room.
func (h *ChatHandler) GetPresence(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	roomId, err := strconv.ParseUint(ctx.Params("roomId"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}

	isMember, err := h.rooms.IsActiveMember(ctx.UserContext(), roomId, principal.UserId)
	if err != nil {
		return err
	}
	if !isMember {
		return service.ErrNotAMember
	}

	userIds, err := h.presence.ListOnline(ctx.UserContext(), roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get presence", &dto.PresenceResponse{
		RoomId:  roomId,
		UserIds: userIds,
	}))
}

// TriggerRetentionSweep queues a manual retention sweep. Intended for
// operators; the periodic ticker covers the normal path.
func (h *ChatHandler) TriggerRetentionSweep(ctx *fiber.Ctx) error {
	type Request struct {
		RoomId     uint64 `json:"room_id"`
		OlderThanD int    `json:"older_than_days" validate:"required,min=1"`
	}
	var req Request
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -req.OlderThanD)
	if err := h.retention.RequestSweep(ctx.UserContext(), req.RoomId, cutoff); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Sweep queued", nil))
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	chat := router.Group("/chat/v1")
	chat.Use(serverutils.JwtMiddleware)
	chat.Get("/rooms/:roomId/messages", h.GetHistory)
	chat.Get("/rooms/:roomId/presence", h.GetPresence)
	chat.Get("/messages/:messageId/reactions", h.GetReactions)
	chat.Post("/messages/:messageId/reactions", h.AddReaction)
	chat.Delete("/messages/:messageId/reactions", h.RemoveReaction)
	chat.Post("/retention/sweep", h.TriggerRetentionSweep)

	// WebSocket sits outside the JWT group; auth happens in the
	// handshake itself since browsers cannot set headers there.
	router.Get("/chat/ws", h.ServeWs)
}
