package service

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"studyroom-backend/internal/apperr"
	"studyroom-backend/internal/ident"
	"studyroom-backend/internal/model"
)

// CommentService 댓글 생성/조회/수정/삭제.
// 댓글 수 변화는 부모 게시글의 commentCount 에 같은 트랜잭션으로 반영된다.
type CommentService struct {
	db      *gorm.DB
	members *MemberService
	logger  hclog.Logger
}

// NewCommentService CommentService 생성
func NewCommentService(db *gorm.DB, members *MemberService, logger hclog.Logger) *CommentService {
	return &CommentService{db: db, members: members, logger: logger.Named("comment")}
}

// CreateCommentInput 댓글 생성 입력
type CreateCommentInput struct {
	Text   string `json:"text"`
	RoomID string `json:"roomId"`
	FeedID string `json:"feedId"`
}

// UpdateCommentInput 댓글 수정 입력
type UpdateCommentInput struct {
	Text string `json:"text"`
}

// Create 댓글 생성. 작성자는 방의 멤버여야 하고, 게시글은 실제로 그 방에
// 속해야 한다 (다른 방의 게시글에 댓글이 붙는 것을 차단). insert 와
// commentCount 증가는 한 트랜잭션이다.
func (s *CommentService) Create(in CreateCommentInput, actorID string, inc CommentInclude) (*model.Comment, error) {
	if !s.members.IsRoomMember(in.RoomID, actorID) {
		return nil, apperr.InvalidArgument(fmt.Sprintf("room with roomId %s does not exist!", in.RoomID))
	}

	var feed model.Feed
	err := s.db.Select("id").First(&feed, "id = ? AND room_id = ?", in.FeedID, in.RoomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidArgument(fmt.Sprintf(
				"feed with feedId %s belonging to room with roomId %s does not exist!",
				in.FeedID, in.RoomID,
			))
		}
		return nil, apperr.Internal("failed to load feed")
	}

	comment := model.Comment{
		ID:     ident.NewID(),
		Text:   in.Text,
		FeedID: in.FeedID,
		RoomID: in.RoomID,
		UserID: actorID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Feed{}).Where("id = ?", in.FeedID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		s.logger.Error("comment create failed", "feedId", in.FeedID, "error", err)
		return nil, apperr.Internal("failed to create comment")
	}

	s.attachRelations(&comment, inc)
	return &comment, nil
}

// FindAll 게시글의 댓글 목록 (방 멤버 전용)
func (s *CommentService) FindAll(roomID, feedID, actorID string, inc CommentInclude) ([]model.Comment, error) {
	if !s.members.IsRoomMember(roomID, actorID) {
		return nil, apperr.InvalidArgument(fmt.Sprintf("user does not belong to room: %s", roomID))
	}

	var comments []model.Comment
	err := s.db.Where("room_id = ? AND feed_id = ?", roomID, feedID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Internal("failed to load comments")
	}

	for i := range comments {
		s.attachRelations(&comments[i], inc)
	}
	return comments, nil
}

// FindOne 댓글 단건 조회. 부재와 소속 방의 비멤버는 동일하게 not_found.
func (s *CommentService) FindOne(id, actorID string, inc CommentInclude) (*model.Comment, error) {
	if !ident.IsValidID(id) {
		return nil, apperr.InvalidArgument("commentId should be a valid comment id.")
	}

	var comment model.Comment
	err := s.db.First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("comment with id: %s not found", id))
		}
		return nil, apperr.Internal("failed to load comment")
	}

	if !s.members.IsRoomMember(comment.RoomID, actorID) {
		return nil, apperr.NotFound(fmt.Sprintf("comment with id: %s not found", id))
	}

	s.attachRelations(&comment, inc)
	return &comment, nil
}

// Update 댓글 수정 (작성자 전용, 비작성자에게는 not_found)
func (s *CommentService) Update(id string, in UpdateCommentInput, actorID string) (*model.Comment, error) {
	comment, err := s.loadOwnComment(id, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(comment).Update("text", in.Text).Error; err != nil {
		return nil, apperr.Internal("failed to update comment")
	}
	return comment, nil
}

// Remove 댓글 삭제 (작성자 전용). 삭제와 commentCount 감소는 한 트랜잭션이다.
func (s *CommentService) Remove(id, actorID string) (string, error) {
	comment, err := s.loadOwnComment(id, actorID)
	if err != nil {
		return "", err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Comment{}, "id = ?", comment.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Feed{}).Where("id = ?", comment.FeedID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1)).Error
	})
	if err != nil {
		s.logger.Error("comment delete failed", "commentId", id, "error", err)
		return "", apperr.Internal("failed to delete comment")
	}

	return fmt.Sprintf("comment with id: %s deleted successfully", id), nil
}

// loadOwnComment 작성자 본인의 댓글 로드, 그 외에는 not_found
func (s *CommentService) loadOwnComment(id, actorID string) (*model.Comment, error) {
	if !ident.IsValidID(id) {
		return nil, apperr.InvalidArgument("id should be a valid comment id.")
	}

	var comment model.Comment
	err := s.db.First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("comment with id: %s not found", id))
		}
		return nil, apperr.Internal("failed to load comment")
	}
	if comment.UserID != actorID {
		return nil, apperr.NotFound(fmt.Sprintf("comment with id: %s not found", id))
	}
	return &comment, nil
}

// attachRelations include 지시자가 요청한 연관 엔티티 로드
func (s *CommentService) attachRelations(comment *model.Comment, inc CommentInclude) {
	if inc.User {
		var user model.User
		if err := s.db.First(&user, "id = ?", comment.UserID).Error; err == nil {
			comment.User = &user
		}
	}
}
