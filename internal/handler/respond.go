package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studyroom-backend/internal/apperr"
	"studyroom-backend/internal/service"
)

// respondError 서비스 실패를 HTTP 응답으로 변환.
// apperr 이외의 오류는 내용을 노출하지 않고 500 으로 처리한다.
func respondError(c *fiber.Ctx, err error) error {
	if ae := apperr.From(err); ae != nil {
		body := fiber.Map{
			"error": ae.Message,
			"kind":  string(ae.Kind),
		}
		for k, v := range ae.Details {
			body[k] = v
		}
		return c.Status(ae.HTTPStatus()).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

// includeSet ?include=a,b,c 쿼리 파라미터 파싱
func includeSet(c *fiber.Ctx) map[string]bool {
	set := map[string]bool{}
	for _, field := range strings.Split(c.Query("include"), ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			set[field] = true
		}
	}
	return set
}

// roomInclude 방 include 지시자
func roomInclude(c *fiber.Ctx) service.RoomInclude {
	set := includeSet(c)
	return service.RoomInclude{
		Editors: set["editors"],
		Viewers: set["viewers"],
		Feeds:   set["feeds"],
	}
}

// feedInclude 게시글 include 지시자
func feedInclude(c *fiber.Ctx) service.FeedInclude {
	set := includeSet(c)
	return service.FeedInclude{
		User:     set["user"],
		Comments: set["comments"],
	}
}

// commentInclude 댓글 include 지시자
func commentInclude(c *fiber.Ctx) service.CommentInclude {
	set := includeSet(c)
	return service.CommentInclude{
		User: set["user"],
	}
}

// userInclude 사용자 include 지시자
func userInclude(c *fiber.Ctx) service.UserInclude {
	set := includeSet(c)
	return service.UserInclude{
		EditRooms: set["editRooms"],
		ViewRooms: set["viewRooms"],
	}
}
