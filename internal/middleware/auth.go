package middleware

import (
	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/dto"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func unauthorized(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}

// JWTProtected accepts HS256 access tokens whose sub claim is a user ID.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		ErrorHandler: unauthorized,
		SuccessHandler: func(c *fiber.Ctx) error {
			if _, err := session.GetUserID(c); err != nil {
				return unauthorized(c, err)
			}
			return c.Next()
		},
	})
}
