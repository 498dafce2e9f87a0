package service

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"studyroom-backend/internal/ident"
	"studyroom-backend/internal/model"
)

// MemberService 방 멤버십 판정 (membership oracle)
type MemberService struct {
	db     *gorm.DB
	logger hclog.Logger
}

// NewMemberService MemberService 생성
func NewMemberService(db *gorm.DB, logger hclog.Logger) *MemberService {
	return &MemberService{db: db, logger: logger.Named("member")}
}

// RoleInRoom 방 안에서의 역할 판정.
// 조회 실패는 전부 RoleNone 으로 취급한다 (fails closed).
func (s *MemberService) RoleInRoom(roomID, userID string) model.Role {
	if !ident.IsValidID(roomID) {
		return model.RoleNone
	}

	var room model.Room
	err := s.db.Select("editor_ids", "viewer_ids").First(&room, "id = ?", roomID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("room lookup failed", "roomId", roomID, "error", err)
		}
		return model.RoleNone
	}

	if room.EditorIDs.Contains(userID) {
		return model.RoleEditor
	}
	if room.ViewerIDs.Contains(userID) {
		return model.RoleViewer
	}
	return model.RoleNone
}

// IsRoomMember 멤버 여부 확인 (편집자 또는 뷰어)
func (s *MemberService) IsRoomMember(roomID, userID string) bool {
	return s.RoleInRoom(roomID, userID).IsMember()
}
