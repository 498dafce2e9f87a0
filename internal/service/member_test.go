package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyroom-backend/internal/ident"
	"studyroom-backend/internal/model"
)

func TestRoleInRoom(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())

	editor := seedUser(t, db, "editor")
	viewer := seedUser(t, db, "viewer")
	outsider := seedUser(t, db, "outsider")
	room := seedRoom(t, db, "study", []*model.User{editor}, []*model.User{viewer})

	assert.Equal(t, model.RoleEditor, members.RoleInRoom(room.ID, editor.ID))
	assert.Equal(t, model.RoleViewer, members.RoleInRoom(room.ID, viewer.ID))
	assert.Equal(t, model.RoleNone, members.RoleInRoom(room.ID, outsider.ID))
}

func TestRoleInRoomFailsClosed(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())

	user := seedUser(t, db, "user")

	// 존재하지 않는 방
	assert.Equal(t, model.RoleNone, members.RoleInRoom(ident.NewID(), user.ID))
	// 형식이 잘못된 방 ID 는 조회 없이 거부
	assert.Equal(t, model.RoleNone, members.RoleInRoom("not-a-uuid", user.ID))
}

func TestIsRoomMember(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())

	editor := seedUser(t, db, "editor")
	viewer := seedUser(t, db, "viewer")
	outsider := seedUser(t, db, "outsider")
	room := seedRoom(t, db, "study", []*model.User{editor}, []*model.User{viewer})

	assert.True(t, members.IsRoomMember(room.ID, editor.ID))
	assert.True(t, members.IsRoomMember(room.ID, viewer.ID))
	assert.False(t, members.IsRoomMember(room.ID, outsider.ID))
}
