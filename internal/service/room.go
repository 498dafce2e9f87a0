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

// RoomService 방 생성/조회/수정/삭제 및 멤버십 변경
type RoomService struct {
	db     *gorm.DB
	logger hclog.Logger
}

// NewRoomService RoomService 생성
func NewRoomService(db *gorm.DB, logger hclog.Logger) *RoomService {
	return &RoomService{db: db, logger: logger.Named("room")}
}

// CreateRoomInput 방 생성 입력
type CreateRoomInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Code        string  `json:"code"`
	Photo       *string `json:"photo"`
}

// UpdateRoomInput 방 수정 입력 (nil 필드는 유지, id 는 불변)
type UpdateRoomInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Code        *string `json:"code"`
	Photo       *string `json:"photo"`
}

// Create 방 생성. 생성자는 유일한 편집자가 되고, 방 insert 와
// 생성자의 editRoomIds 갱신은 한 트랜잭션으로 묶인다.
func (s *RoomService) Create(actorID string, in CreateRoomInput, inc RoomInclude) (*model.Room, error) {
	s.logger.Debug("creating room", "actorId", actorID, "name", in.Name)

	room := model.Room{
		ID:          ident.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Code:        in.Code,
		Photo:       in.Photo,
		EditorIDs:   model.IDList{actorID},
		ViewerIDs:   model.IDList{},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}

		var user model.User
		if err := tx.First(&user, "id = ?", actorID).Error; err != nil {
			return err
		}
		editRoomIDs := append(user.EditRoomIDs, room.ID)
		return tx.Model(&model.User{}).Where("id = ?", actorID).
			Update("edit_room_ids", editRoomIDs).Error
	})
	if err != nil {
		s.logger.Error("room create failed", "actorId", actorID, "error", err)
		return nil, apperr.Internal("failed to create room")
	}

	s.attachRelations(&room, inc)
	return &room, nil
}

// FindAll 요청자가 편집자 또는 뷰어로 속한 모든 방 조회.
// 사용자 레코드의 역인덱스를 통해 해석한다.
func (s *RoomService) FindAll(actorID string, inc RoomInclude) ([]model.Room, error) {
	var user model.User
	if err := s.db.First(&user, "id = ?", actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.Room{}, nil
		}
		return nil, apperr.Internal("failed to load user")
	}

	roomIDs := append(model.IDList{}, user.EditRoomIDs...)
	for _, id := range user.ViewRoomIDs {
		if !roomIDs.Contains(id) {
			roomIDs = append(roomIDs, id)
		}
	}
	if len(roomIDs) == 0 {
		return []model.Room{}, nil
	}

	var rooms []model.Room
	err := s.db.Where("id IN ?", []string(roomIDs)).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, apperr.Internal("failed to load rooms")
	}

	for i := range rooms {
		s.attachRelations(&rooms[i], inc)
	}
	return rooms, nil
}

// FindOne 방 단건 조회. 부재와 비멤버는 동일하게 not_found 로 응답해
// 방의 존재 여부를 비멤버에게 노출하지 않는다.
func (s *RoomService) FindOne(actorID, roomID string, inc RoomInclude) (*model.Room, error) {
	if !ident.IsValidID(roomID) {
		return nil, apperr.InvalidArgument("id should be a valid room id.")
	}

	room, err := s.loadRoom(roomID)
	if err != nil {
		return nil, err
	}
	if !room.EditorIDs.Contains(actorID) && !room.ViewerIDs.Contains(actorID) {
		return nil, apperr.NotFound(fmt.Sprintf("room with id: %s not found", roomID))
	}

	s.attachRelations(room, inc)
	return room, nil
}

// Update 방 메타데이터 수정 (편집자 전용, 비편집자에게는 not_found)
func (s *RoomService) Update(actorID, roomID string, in UpdateRoomInput, inc RoomInclude) (*model.Room, error) {
	if !ident.IsValidID(roomID) {
		return nil, apperr.InvalidArgument("id should be a valid room id.")
	}

	room, err := s.loadRoom(roomID)
	if err != nil {
		return nil, err
	}
	if !room.EditorIDs.Contains(actorID) {
		return nil, apperr.NotFound(fmt.Sprintf("room with id: %s not found", roomID))
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Code != nil {
		updates["code"] = *in.Code
	}
	if in.Photo != nil {
		updates["photo"] = *in.Photo
	}

	if len(updates) > 0 {
		if err := s.db.Model(room).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update room")
		}
	}

	s.attachRelations(room, inc)
	return room, nil
}

// Remove 방 삭제 (편집자 전용). 모든 멤버의 역인덱스 정리, 댓글/게시글
// 삭제, 방 삭제까지 한 트랜잭션으로 수행한다.
func (s *RoomService) Remove(actorID, roomID string) (string, error) {
	if !ident.IsValidID(roomID) {
		return "", apperr.InvalidArgument("id should be a valid room id.")
	}

	room, err := s.loadRoom(roomID)
	if err != nil {
		return "", err
	}
	if !room.EditorIDs.Contains(actorID) {
		return "", apperr.NotFound(fmt.Sprintf("room with id: %s not found", roomID))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, editorID := range room.EditorIDs {
			if err := removeFromUserIndex(tx, editorID, "edit_room_ids", roomID); err != nil {
				return err
			}
		}
		for _, viewerID := range room.ViewerIDs {
			if err := removeFromUserIndex(tx, viewerID, "view_room_ids", roomID); err != nil {
				return err
			}
		}

		if err := tx.Where("room_id = ?", roomID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&model.Feed{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Room{}, "id = ?", roomID).Error
	})
	if err != nil {
		s.logger.Error("room delete failed", "roomId", roomID, "error", err)
		return "", apperr.Internal("failed to delete room")
	}

	return fmt.Sprintf("room with roomId: %s deleted successfully", roomID), nil
}

// Join 방 참여. 새 멤버는 항상 뷰어로 합류하며, 방의 viewerIds 와
// 사용자의 viewRoomIds 갱신은 한 트랜잭션으로 묶인다.
func (s *RoomService) Join(actorID, roomID string) (string, error) {
	if !ident.IsValidID(roomID) {
		return "", apperr.InvalidArgument("id should be a valid room id.")
	}

	room, err := s.loadRoom(roomID)
	if err != nil {
		return "", err
	}
	if room.EditorIDs.Contains(actorID) || room.ViewerIDs.Contains(actorID) {
		return "", apperr.Conflict("user is already a part of this room")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		viewerIDs := append(room.ViewerIDs, actorID)
		if err := tx.Model(&model.Room{}).Where("id = ?", roomID).
			Update("viewer_ids", viewerIDs).Error; err != nil {
			return err
		}

		var user model.User
		if err := tx.First(&user, "id = ?", actorID).Error; err != nil {
			return err
		}
		viewRoomIDs := append(user.ViewRoomIDs, roomID)
		return tx.Model(&model.User{}).Where("id = ?", actorID).
			Update("view_room_ids", viewRoomIDs).Error
	})
	if err != nil {
		s.logger.Error("room join failed", "roomId", roomID, "actorId", actorID, "error", err)
		return "", apperr.Internal("failed to join room")
	}

	return fmt.Sprintf("user joined room with roomId: %s successfully", roomID), nil
}

// Leave 방 탈퇴. 방은 항상 편집자를 한 명 이상 유지해야 하므로
// 유일한 편집자는 떠날 수 없다.
func (s *RoomService) Leave(actorID, roomID string) (string, error) {
	if !ident.IsValidID(roomID) {
		return "", apperr.InvalidArgument("id should be a valid room id.")
	}

	room, err := s.loadRoom(roomID)
	if err != nil {
		return "", err
	}

	isEditor := room.EditorIDs.Contains(actorID)
	isViewer := room.ViewerIDs.Contains(actorID)
	if !isEditor && !isViewer {
		return "", apperr.NotFound(fmt.Sprintf("room with id: %s not found", roomID))
	}

	if isEditor && len(room.EditorIDs) == 1 {
		return "", apperr.Conflict("user is the only editor of this room, leave unsuccessful")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if isEditor {
			if err := tx.Model(&model.Room{}).Where("id = ?", roomID).
				Update("editor_ids", room.EditorIDs.Without(actorID)).Error; err != nil {
				return err
			}
			return removeFromUserIndex(tx, actorID, "edit_room_ids", roomID)
		}
		if err := tx.Model(&model.Room{}).Where("id = ?", roomID).
			Update("viewer_ids", room.ViewerIDs.Without(actorID)).Error; err != nil {
			return err
		}
		return removeFromUserIndex(tx, actorID, "view_room_ids", roomID)
	})
	if err != nil {
		s.logger.Error("room leave failed", "roomId", roomID, "actorId", actorID, "error", err)
		return "", apperr.Internal("failed to leave room")
	}

	return fmt.Sprintf("user left room with roomId: %s successfully", roomID), nil
}

// loadRoom 방 단건 로드, 부재 시 not_found
func (s *RoomService) loadRoom(roomID string) (*model.Room, error) {
	var room model.Room
	err := s.db.First(&room, "id = ?", roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("room with id: %s not found", roomID))
		}
		return nil, apperr.Internal("failed to load room")
	}
	return &room, nil
}

// attachRelations include 지시자가 요청한 연관 엔티티 로드.
// 실패해도 본 연산의 결과에는 영향을 주지 않는다.
func (s *RoomService) attachRelations(room *model.Room, inc RoomInclude) {
	if inc.Editors && len(room.EditorIDs) > 0 {
		if err := s.db.Where("id IN ?", []string(room.EditorIDs)).Find(&room.Editors).Error; err != nil {
			s.logger.Warn("failed to load editors", "roomId", room.ID, "error", err)
		}
	}
	if inc.Viewers && len(room.ViewerIDs) > 0 {
		if err := s.db.Where("id IN ?", []string(room.ViewerIDs)).Find(&room.Viewers).Error; err != nil {
			s.logger.Warn("failed to load viewers", "roomId", room.ID, "error", err)
		}
	}
	if inc.Feeds {
		if err := s.db.Where("room_id = ?", room.ID).Find(&room.Feeds).Error; err != nil {
			s.logger.Warn("failed to load feeds", "roomId", room.ID, "error", err)
		}
	}
}

// removeFromUserIndex 사용자 역인덱스 컬럼에서 roomID 제거.
// 사용자 레코드가 이미 없으면 정리할 것이 없으므로 무시한다.
func removeFromUserIndex(tx *gorm.DB, userID, column, roomID string) error {
	var user model.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var list model.IDList
	switch column {
	case "edit_room_ids":
		list = user.EditRoomIDs
	case "view_room_ids":
		list = user.ViewRoomIDs
	}
	return tx.Model(&model.User{}).Where("id = ?", userID).
		Update(column, list.Without(roomID)).Error
}
