package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studyroom-backend/internal/auth"
	"studyroom-backend/internal/service"
)

// CommentHandler 댓글 핸들러
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler CommentHandler 생성
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CreateComment 댓글 생성
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req service.CreateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "comment text cannot be empty!",
		})
	}
	if req.RoomID == "" || req.FeedID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "roomId and feedId cannot be empty!",
		})
	}

	comment, err := h.comments.Create(req, claims.UserID, commentInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetFeedComments 게시글의 댓글 목록
func (h *CommentHandler) GetFeedComments(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	comments, err := h.comments.FindAll(c.Params("roomId"), c.Params("feedId"), claims.UserID, commentInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"comments": comments,
		"total":    len(comments),
	})
}

// GetComment 댓글 단건 조회
func (h *CommentHandler) GetComment(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	comment, err := h.comments.FindOne(c.Params("id"), claims.UserID, commentInclude(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment 댓글 수정
func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req service.UpdateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "comment text cannot be empty!",
		})
	}

	comment, err := h.comments.Update(c.Params("id"), req, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment 댓글 삭제
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	claims, err := auth.GetClaimsFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	message, err := h.comments.Remove(c.Params("id"), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}
