package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studyroom-backend/internal/auth"
	"studyroom-backend/internal/service"
)

// FeedHandler 게시글 핸들러
type FeedHandler struct {
	feeds *service.FeedService
}

// NewFeedHandler FeedHandler 생성
func NewFeedHandler(feeds *service.FeedService) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

// CreateFeed 게시글 생성
func (h *FeedHandler) CreateFeed(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req service.CreateFeedInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "feed text cannot be empty!",
		})
	}
	if req.RoomID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "roomId cannot be empty!",
		})
	}

	feed, err := h.feeds.Create(claims.UserID, req, feedInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(feed)
}

// GetRoomFeeds 방의 게시글 목록
func (h *FeedHandler) GetRoomFeeds(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	feeds, err := h.feeds.FindAll(c.Params("roomId"), claims.UserID, feedInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"feeds": feeds,
		"total": len(feeds),
	})
}

// GetFeed 게시글 단건 조회
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	feed, err := h.feeds.FindOne(c.Params("id"), claims.UserID, feedInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// UpdateFeed 게시글 수정
func (h *FeedHandler) UpdateFeed(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req service.UpdateFeedInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "feed text cannot be empty!",
		})
	}

	feed, err := h.feeds.Update(c.Params("id"), req, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// DeleteFeed 게시글 삭제
func (h *FeedHandler) DeleteFeed(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	message, err := h.feeds.Remove(c.Params("id"), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}
