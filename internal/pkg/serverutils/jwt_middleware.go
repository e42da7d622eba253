package serverutils

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the identity resolved from a bearer token. Token issuance
// lives in the identity service; this subsystem only consumes claims.
type Principal struct {
	UserId   uint64
	Nickname string
}

// ResolveToken parses a bearer token into a Principal.
func ResolveToken(tokenStr string) (*Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	userId, ok := numericClaim(claims["user_id"])
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	nickname, _ := claims["nickname"].(string)

	return &Principal{UserId: userId, Nickname: nickname}, nil
}

// numericClaim accepts both JSON numbers and numeric strings; issuers
// have historically emitted both.
func numericClaim(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}

	principal, err := ResolveToken(authHeader[7:])
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	ctx.Locals("user_id", principal.UserId)
	ctx.Locals("nickname", principal.Nickname)
	return ctx.Next()
}

// CurrentPrincipal reads the identity the middleware stored on the ctx.
func CurrentPrincipal(ctx *fiber.Ctx) (*Principal, bool) {
	userId, ok := ctx.Locals("user_id").(uint64)
	if !ok {
		return nil, false
	}
	nickname, _ := ctx.Locals("nickname").(string)
	return &Principal{UserId: userId, Nickname: nickname}, true
}
