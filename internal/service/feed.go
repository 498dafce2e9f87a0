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

// FeedService 게시글 생성/조회/수정/삭제
type FeedService struct {
	db      *gorm.DB
	members *MemberService
	logger  hclog.Logger
}

// NewFeedService FeedService 생성
func NewFeedService(db *gorm.DB, members *MemberService, logger hclog.Logger) *FeedService {
	return &FeedService{db: db, members: members, logger: logger.Named("feed")}
}

// CreateFeedInput 게시글 생성 입력
type CreateFeedInput struct {
	Text   string `json:"text"`
	RoomID string `json:"roomId"`
}

// UpdateFeedInput 게시글 수정 입력
type UpdateFeedInput struct {
	Text string `json:"text"`
}

// Create 게시글 생성. 작성자는 해당 방의 멤버여야 한다.
// 방 부재와 비멤버는 같은 메시지로 응답한다.
func (s *FeedService) Create(actorID string, in CreateFeedInput, inc FeedInclude) (*model.Feed, error) {
	if !s.members.IsRoomMember(in.RoomID, actorID) {
		return nil, apperr.InvalidArgument(fmt.Sprintf("room with roomId %s does not exist!", in.RoomID))
	}

	feed := model.Feed{
		ID:           ident.NewID(),
		Text:         in.Text,
		RoomID:       in.RoomID,
		UserID:       actorID,
		CommentCount: 0,
	}
	if err := s.db.Create(&feed).Error; err != nil {
		s.logger.Error("feed create failed", "roomId", in.RoomID, "error", err)
		return nil, apperr.Internal("failed to create feed")
	}

	s.attachRelations(&feed, inc)
	return &feed, nil
}

// FindAll 방의 게시글 목록. 비멤버에게는 에러 대신 빈 목록을 돌려준다
// (방 조회의 not_found 정책과 구분되는 silent-empty 정책).
func (s *FeedService) FindAll(roomID, actorID string, inc FeedInclude) ([]model.Feed, error) {
	if !ident.IsValidID(roomID) {
		return nil, apperr.InvalidArgument("roomId should be a valid room id.")
	}

	if !s.members.IsRoomMember(roomID, actorID) {
		return []model.Feed{}, nil
	}

	var feeds []model.Feed
	err := s.db.Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&feeds).Error
	if err != nil {
		return nil, apperr.Internal("failed to load feeds")
	}

	for i := range feeds {
		s.attachRelations(&feeds[i], inc)
	}
	return feeds, nil
}

// FindOne 게시글 단건 조회. 부재와 소속 방의 비멤버는 동일하게 not_found.
func (s *FeedService) FindOne(id, actorID string, inc FeedInclude) (*model.Feed, error) {
	if !ident.IsValidID(id) {
		return nil, apperr.InvalidArgument("id should be a valid feed id.")
	}

	var feed model.Feed
	err := s.db.First(&feed, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("feed with id: %s not found", id))
		}
		return nil, apperr.Internal("failed to load feed")
	}

	if !s.members.IsRoomMember(feed.RoomID, actorID) {
		return nil, apperr.NotFound(fmt.Sprintf("feed with id: %s not found", id))
	}

	s.attachRelations(&feed, inc)
	return &feed, nil
}

// Update 게시글 수정 (작성자 전용, 비작성자에게는 not_found)
func (s *FeedService) Update(id string, in UpdateFeedInput, actorID string) (*model.Feed, error) {
	feed, err := s.loadOwnFeed(id, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(feed).Update("text", in.Text).Error; err != nil {
		return nil, apperr.Internal("failed to update feed")
	}
	return feed, nil
}

// Remove 게시글 삭제 (작성자 전용). 댓글 삭제와 게시글 삭제를
// 한 트랜잭션으로 수행한다.
func (s *FeedService) Remove(id, actorID string) (string, error) {
	feed, err := s.loadOwnFeed(id, actorID)
	if err != nil {
		return "", err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feed_id = ?", feed.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Feed{}, "id = ?", feed.ID).Error
	})
	if err != nil {
		s.logger.Error("feed delete failed", "feedId", id, "error", err)
		return "", apperr.Internal("failed to delete feed")
	}

	return fmt.Sprintf("feed with id: %s deleted successfully", id), nil
}

// loadOwnFeed 작성자 본인의 게시글 로드, 그 외에는 not_found
func (s *FeedService) loadOwnFeed(id, actorID string) (*model.Feed, error) {
	if !ident.IsValidID(id) {
		return nil, apperr.InvalidArgument("id should be a valid feed id.")
	}

	var feed model.Feed
	err := s.db.First(&feed, "id = ? AND user_id = ?", id, actorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("feed with id: %s not found", id))
		}
		return nil, apperr.Internal("failed to load feed")
	}
	return &feed, nil
}

// attachRelations include 지시자가 요청한 연관 엔티티 로드
func (s *FeedService) attachRelations(feed *model.Feed, inc FeedInclude) {
	if inc.User {
		var user model.User
		if err := s.db.First(&user, "id = ?", feed.UserID).Error; err == nil {
			feed.User = &user
		}
	}
	if inc.Comments {
		if err := s.db.Where("feed_id = ?", feed.ID).
			Order("created_at ASC").
			Find(&feed.Comments).Error; err != nil {
			s.logger.Warn("failed to load comments", "feedId", feed.ID, "error", err)
		}
	}
}
