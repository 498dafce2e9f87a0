package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"studyroom-backend/internal/auth"
	"studyroom-backend/internal/service"
)

// UserHandler 계정 핸들러
type UserHandler struct {
	users        *service.UserService
	secureCookie bool
}

// NewUserHandler UserHandler 생성
func NewUserHandler(users *service.UserService, secureCookie bool) *UserHandler {
	return &UserHandler{users: users, secureCookie: secureCookie}
}

// DeleteMe 계정 삭제. 유일한 편집자로 남아 있는 방이 있으면 거부된다.
func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	message, err := h.users.Remove(claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true, Secure: h.secureCookie})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true, Secure: h.secureCookie})

	return c.JSON(fiber.Map{"message": message})
}
