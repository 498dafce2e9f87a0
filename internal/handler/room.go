package handler

import (
	"github.com/gofiber/fiber/v2"

	"studyroom-backend/internal/auth"
	"studyroom-backend/internal/service"
)

// RoomHandler 방 핸들러
type RoomHandler struct {
	rooms *service.RoomService
}

// NewRoomHandler RoomHandler 생성
func NewRoomHandler(rooms *service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// CreateRoom 방 생성
func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req service.CreateRoomInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Name == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "room name and code are required",
		})
	}

	room, err := h.rooms.Create(claims.UserID, req, roomInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

// GetMyRooms 내가 속한 방 목록
func (h *RoomHandler) GetMyRooms(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	rooms, err := h.rooms.FindAll(claims.UserID, roomInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"rooms": rooms,
		"total": len(rooms),
	})
}

// GetRoom 방 상세 조회
func (h *RoomHandler) GetRoom(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	room, err := h.rooms.FindOne(claims.UserID, c.Params("id"), roomInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

// UpdateRoom 방 수정
func (h *RoomHandler) UpdateRoom(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req service.UpdateRoomInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	room, err := h.rooms.Update(claims.UserID, c.Params("id"), req, roomInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

// DeleteRoom 방 삭제
func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	message, err := h.rooms.Remove(claims.UserID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}

// JoinRoom 방 참여
func (h *RoomHandler) JoinRoom(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	message, err := h.rooms.Join(claims.UserID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}

// LeaveRoom 방 탈퇴
func (h *RoomHandler) LeaveRoom(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	message, err := h.rooms.Leave(claims.UserID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}
