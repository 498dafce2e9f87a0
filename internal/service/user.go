package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"studyroom-backend/internal/apperr"
	"studyroom-backend/internal/auth"
	"studyroom-backend/internal/ident"
	"studyroom-backend/internal/model"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserService 계정 생성/조회/수정/삭제
type UserService struct {
	db         *gorm.DB
	bcryptCost int
	logger     hclog.Logger
}

// NewUserService UserService 생성
func NewUserService(db *gorm.DB, bcryptCost int, logger hclog.Logger) *UserService {
	return &UserService{db: db, bcryptCost: bcryptCost, logger: logger.Named("user")}
}

// RegisterUserInput 회원가입 입력
type RegisterUserInput struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// UpdateUserInput 프로필 수정 입력 (nil 필드는 유지)
type UpdateUserInput struct {
	Name        *string `json:"name"`
	Institution *string `json:"institution"`
}

// Register 회원가입. 이메일 중복을 먼저 확인하고, 비밀번호는
// bcrypt 해시 후 저장한다.
func (s *UserService) Register(in RegisterUserInput, inc UserInclude) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.InvalidArgument("name, email and password are required")
	}
	if !emailRegex.MatchString(in.Email) {
		return nil, apperr.InvalidArgument("invalid email format")
	}
	if len(in.Password) < 8 {
		return nil, apperr.InvalidArgument("password must be at least 8 characters long")
	}

	var existing model.User
	err := s.db.First(&existing, "email = ?", in.Email).Error
	if err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("user with email: %s already exists.", in.Email)).
			WithDetails(map[string]interface{}{"field": "email"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to check email")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password")
	}

	user := model.User{
		ID:          ident.NewID(),
		Name:        in.Name,
		Institution: in.Institution,
		Email:       in.Email,
		Password:    hash,
		EditRoomIDs: model.IDList{},
		ViewRoomIDs: model.IDList{},
	}
	if err := s.db.Create(&user).Error; err != nil {
		s.logger.Error("user create failed", "email", in.Email, "error", err)
		return nil, apperr.Internal("failed to create user")
	}

	s.attachRelations(&user, inc)
	return &user, nil
}

// VerifyCredentials 이메일/비밀번호 검증. 이메일 부재와 비밀번호 불일치는
// 같은 실패로 응답해 계정 존재 여부를 노출하지 않는다.
func (s *UserService) VerifyCredentials(email, password string) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidArgument("invalid credentials")
		}
		return nil, apperr.Internal("failed to load user")
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperr.InvalidArgument("invalid credentials")
	}
	return &user, nil
}

// FindByID ID 로 사용자 조회
func (s *UserService) FindByID(id string, inc UserInclude) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("user with id: %s not found", id))
		}
		return nil, apperr.Internal("failed to load user")
	}

	s.attachRelations(&user, inc)
	return &user, nil
}

// Update 프로필 수정 (이름/소속만)
func (s *UserService) Update(id string, in UpdateUserInput, inc UserInclude) (*model.User, error) {
	user, err := s.FindByID(id, UserInclude{})
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Institution != nil {
		updates["institution"] = strings.TrimSpace(*in.Institution)
	}
	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update user")
		}
	}

	s.attachRelations(user, inc)
	return user, nil
}

// Remove 계정 삭제. 사용자가 어떤 방의 유일한 편집자라면 삭제를 막고
// 해당 방 목록을 함께 돌려준다. 삭제는 작성한 게시글/댓글로 전파되지 않는다.
func (s *UserService) Remove(id string) (string, error) {
	user, err := s.FindByID(id, UserInclude{})
	if err != nil {
		return "", err
	}

	roomIDs := append(model.IDList{}, user.EditRoomIDs...)
	for _, rid := range user.ViewRoomIDs {
		if !roomIDs.Contains(rid) {
			roomIDs = append(roomIDs, rid)
		}
	}

	if len(roomIDs) > 0 {
		var rooms []model.Room
		if err := s.db.Where("id IN ?", []string(roomIDs)).Find(&rooms).Error; err != nil {
			return "", apperr.Internal("failed to load rooms")
		}

		onlyEditorRooms := []map[string]interface{}{}
		for _, room := range rooms {
			if room.EditorIDs.Contains(id) && len(room.EditorIDs) == 1 {
				onlyEditorRooms = append(onlyEditorRooms, map[string]interface{}{
					"roomId": room.ID,
					"name":   room.Name,
				})
			}
		}
		if len(onlyEditorRooms) > 0 {
			return "", apperr.Conflict("user is the only editor in some of the rooms.").
				WithDetails(map[string]interface{}{"rooms": onlyEditorRooms})
		}
	}

	if err := s.db.Delete(&model.User{}, "id = ?", id).Error; err != nil {
		s.logger.Error("user delete failed", "userId", id, "error", err)
		return "", apperr.Internal("failed to delete user")
	}

	return fmt.Sprintf("user with id: %s removed successfully!", id), nil
}

// attachRelations include 지시자가 요청한 연관 방 목록 로드
func (s *UserService) attachRelations(user *model.User, inc UserInclude) {
	if inc.EditRooms && len(user.EditRoomIDs) > 0 {
		if err := s.db.Where("id IN ?", []string(user.EditRoomIDs)).Find(&user.EditRooms).Error; err != nil {
			s.logger.Warn("failed to load edit rooms", "userId", user.ID, "error", err)
		}
	}
	if inc.ViewRooms && len(user.ViewRoomIDs) > 0 {
		if err := s.db.Where("id IN ?", []string(user.ViewRoomIDs)).Find(&user.ViewRooms).Error; err != nil {
			s.logger.Warn("failed to load view rooms", "userId", user.ID, "error", err)
		}
	}
}
