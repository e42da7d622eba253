package controller

import (
	"strconv"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/pkg/serverutils"
	"groupchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRoomController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ShowByGroup(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	Join(ctx *fiber.Ctx) error
	Leave(ctx *fiber.Ctx) error
	GetMembers(ctx *fiber.Ctx) error
	UpdateLastRead(ctx *fiber.Ctx) error
}

type roomController struct {
	service service.IRoomService
}

func NewRoomController(service service.IRoomService) IRoomController {
	return &roomController{service: service}
}

func (c *roomController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/room/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("/by-group/:groupId", c.ShowByGroup)
	h.Delete(":id", c.Deactivate)
	h.Post(":id/join", c.Join)
	h.Post(":id/leave", c.Leave)
	h.Get(":id/members", c.GetMembers)
	h.Put(":id/last-read", c.UpdateLastRead)
}

func (c *roomController) Create(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateRoom(ctx.UserContext(), principal.UserId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create room", res))
}

func (c *roomController) ShowByGroup(ctx *fiber.Ctx) error {
	groupId, err := strconv.ParseUint(ctx.Params("groupId"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid group id")
	}

	res, err := c.service.FindActiveRoomForGroup(ctx.UserContext(), groupId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get active room", res))
}

func (c *roomController) Deactivate(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	roomId, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}

	if err := c.service.DeactivateRoom(ctx.UserContext(), principal.UserId, roomId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success deactivate room", nil))
}

func (c *roomController) Join(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	roomId, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}

	res, err := c.service.Join(ctx.UserContext(), roomId, principal.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success join room", res))
}

func (c *roomController) Leave(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	roomId, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}

	if err := c.service.Leave(ctx.UserContext(), roomId, principal.UserId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success leave room", nil))
}

func (c *roomController) GetMembers(ctx *fiber.Ctx) error {
	roomId, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}

	res, err := c.service.ListActiveMembers(ctx.UserContext(), roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get members", res))
}

func (c *roomController) UpdateLastRead(ctx *fiber.Ctx) error {
	principal, ok := serverutils.CurrentPrincipal(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	roomId, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}

	var req dto.UpdateLastReadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateLastRead(ctx.UserContext(), roomId, principal.UserId, req.MessageId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update read pointer", res))
}
