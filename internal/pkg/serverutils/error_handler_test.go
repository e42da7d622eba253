package serverutils

import (
	"net/http/httptest"
	"testing"

	"groupchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddlewareStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not a member", err: service.ErrNotAMember, wantStatus: fiber.StatusForbidden},
		{name: "room not found", err: service.ErrRoomNotFound, wantStatus: fiber.StatusNotFound},
		{name: "message not found", err: service.ErrMessageNotFound, wantStatus: fiber.StatusNotFound},
		{name: "already member", err: service.ErrAlreadyMember, wantStatus: fiber.StatusConflict},
		{name: "room full", err: service.ErrRoomFull, wantStatus: fiber.StatusConflict},
		{name: "duplicate reaction", err: service.ErrDuplicateReaction, wantStatus: fiber.StatusConflict},
		{name: "empty body", err: service.ErrEmptyBody, wantStatus: fiber.StatusBadRequest},
		{name: "body too long", err: service.ErrBodyTooLong, wantStatus: fiber.StatusBadRequest},
		{name: "auth failed", err: service.ErrAuthenticationFailed, wantStatus: fiber.StatusUnauthorized},
		{name: "unknown error", err: assert.AnError, wantStatus: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/boom", func(ctx *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestErrorHandlerMiddlewarePassesFiberErrors(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/teapot", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}

func TestValidateRequest(t *testing.T) {
	type payload struct {
		Name string `validate:"required,max=5"`
	}

	assert.NoError(t, ValidateRequest(payload{Name: "ok"}))

	err := ValidateRequest(payload{})
	require.Error(t, err)
	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)

	assert.Error(t, ValidateRequest(payload{Name: "toolong"}))
}
