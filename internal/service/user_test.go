package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studyroom-backend/internal/apperr"
	"studyroom-backend/internal/model"
)

func TestUserRegister(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, bcrypt.MinCost, testLogger())

	user, err := users.Register(RegisterUserInput{
		Name:        "alice",
		Institution: "jungle",
		Email:       "alice@example.com",
		Password:    "password123",
	}, UserInclude{})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", user.Password)
	assert.Empty(t, user.EditRoomIDs)
	assert.Empty(t, user.ViewRoomIDs)

	// 중복 이메일은 conflict
	_, err = users.Register(RegisterUserInput{
		Name:     "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	}, UserInclude{})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUserRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, bcrypt.MinCost, testLogger())

	cases := []struct {
		name  string
		input RegisterUserInput
	}{
		{"missing name", RegisterUserInput{Email: "a@b.com", Password: "password123"}},
		{"missing email", RegisterUserInput{Name: "a", Password: "password123"}},
		{"bad email", RegisterUserInput{Name: "a", Email: "not-an-email", Password: "password123"}},
		{"short password", RegisterUserInput{Name: "a", Email: "a@b.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.Register(tc.input, UserInclude{})
			assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
		})
	}
}

func TestVerifyCredentials(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, bcrypt.MinCost, testLogger())

	_, err := users.Register(RegisterUserInput{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}, UserInclude{})
	require.NoError(t, err)

	user, err := users.VerifyCredentials("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// 이메일 부재와 비밀번호 불일치는 같은 메시지
	_, wrongPass := users.VerifyCredentials("alice@example.com", "wrongpassword")
	_, noUser := users.VerifyCredentials("nobody@example.com", "password123")
	require.Error(t, wrongPass)
	require.Error(t, noUser)
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestUserUpdate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, bcrypt.MinCost, testLogger())

	alice := seedUser(t, db, "alice")

	newName := "alice2"
	newInst := "krafton"
	updated, err := users.Update(alice.ID, UpdateUserInput{
		Name:        &newName,
		Institution: &newInst,
	}, UserInclude{})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Name)
	assert.Equal(t, "krafton", updated.Institution)
	assert.Equal(t, alice.Email, updated.Email)
}

func TestUserRemoveBlockedWhenSoleEditor(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, bcrypt.MinCost, testLogger())

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	soleRoom := seedRoom(t, db, "solo", []*model.User{alice}, []*model.User{bob})
	seedRoom(t, db, "shared", []*model.User{alice, bob}, nil)

	_, err := users.Remove(alice.ID)
	require.Error(t, err)
	ae := apperr.From(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)

	// 막힌 방 목록이 details 로 전달된다
	rooms, ok := ae.Details["rooms"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, rooms, 1)
	assert.Equal(t, soleRoom.ID, rooms[0]["roomId"])
	assert.Equal(t, soleRoom.Name, rooms[0]["name"])

	// 사용자는 삭제되지 않음
	var count int64
	db.Model(&model.User{}).Where("id = ?", alice.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserRemove(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, bcrypt.MinCost, testLogger())

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedRoom(t, db, "shared", []*model.User{alice, bob}, nil)

	// 공동 편집자가 있으면 삭제 가능
	_, err := users.Remove(alice.ID)
	require.NoError(t, err)

	var count int64
	db.Model(&model.User{}).Where("id = ?", alice.ID).Count(&count)
	assert.Zero(t, count)
}
