package service

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studyroom-backend/internal/ident"
	"studyroom-backend/internal/model"
)

// newTestDB 인메모리 sqlite 데이터베이스 생성
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.User{}, &model.Room{}, &model.Feed{}, &model.Comment{})
	require.NoError(t, err)

	return db
}

func testLogger() hclog.Logger {
	return hclog.NewNullLogger()
}

// seedUser 테스트 사용자 생성
func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := model.User{
		ID:          ident.NewID(),
		Name:        name,
		Email:       name + "@example.com",
		Password:    "not-a-real-hash",
		EditRoomIDs: model.IDList{},
		ViewRoomIDs: model.IDList{},
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedRoom 편집자/뷰어가 지정된 방을 역인덱스까지 맞춰 생성
func seedRoom(t *testing.T, db *gorm.DB, name string, editors, viewers []*model.User) *model.Room {
	t.Helper()

	room := model.Room{
		ID:        ident.NewID(),
		Name:      name,
		Code:      "CODE-" + name,
		EditorIDs: model.IDList{},
		ViewerIDs: model.IDList{},
	}
	for _, u := range editors {
		room.EditorIDs = append(room.EditorIDs, u.ID)
	}
	for _, u := range viewers {
		room.ViewerIDs = append(room.ViewerIDs, u.ID)
	}
	require.NoError(t, db.Create(&room).Error)

	for _, u := range editors {
		u.EditRoomIDs = append(u.EditRoomIDs, room.ID)
		require.NoError(t, db.Model(&model.User{}).Where("id = ?", u.ID).
			Update("edit_room_ids", u.EditRoomIDs).Error)
	}
	for _, u := range viewers {
		u.ViewRoomIDs = append(u.ViewRoomIDs, room.ID)
		require.NoError(t, db.Model(&model.User{}).Where("id = ?", u.ID).
			Update("view_room_ids", u.ViewRoomIDs).Error)
	}
	return &room
}

// seedFeed 테스트 게시글 생성
func seedFeed(t *testing.T, db *gorm.DB, room *model.Room, author *model.User, text string) *model.Feed {
	t.Helper()

	feed := model.Feed{
		ID:     ident.NewID(),
		Text:   text,
		RoomID: room.ID,
		UserID: author.ID,
	}
	require.NoError(t, db.Create(&feed).Error)
	return &feed
}

// reloadUser 사용자 레코드 재조회
func reloadUser(t *testing.T, db *gorm.DB, id string) *model.User {
	t.Helper()

	var user model.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return &user
}

// reloadRoom 방 레코드 재조회
func reloadRoom(t *testing.T, db *gorm.DB, id string) *model.Room {
	t.Helper()

	var room model.Room
	require.NoError(t, db.First(&room, "id = ?", id).Error)
	return &room
}

// reloadFeed 게시글 레코드 재조회
func reloadFeed(t *testing.T, db *gorm.DB, id string) *model.Feed {
	t.Helper()

	var feed model.Feed
	require.NoError(t, db.First(&feed, "id = ?", id).Error)
	return &feed
}
