package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyroom-backend/internal/apperr"
	"studyroom-backend/internal/ident"
	"studyroom-backend/internal/model"
)

func TestCommentCreate(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())
	comments := NewCommentService(db, members, testLogger())

	editor := seedUser(t, db, "editor")
	viewer := seedUser(t, db, "viewer")
	outsider := seedUser(t, db, "outsider")
	room := seedRoom(t, db, "study", []*model.User{editor}, []*model.User{viewer})
	feed := seedFeed(t, db, room, editor, "post")

	comment, err := comments.Create(CreateCommentInput{
		Text: "reply", RoomID: room.ID, FeedID: feed.ID,
	}, viewer.ID, CommentInclude{})
	require.NoError(t, err)
	assert.Equal(t, viewer.ID, comment.UserID)

	// commentCount 가 같은 트랜잭션에서 증가
	assert.Equal(t, 1, reloadFeed(t, db, feed.ID).CommentCount)

	// 비멤버는 방 부재와 같은 메시지로 거부
	_, err = comments.Create(CreateCommentInput{
		Text: "x", RoomID: room.ID, FeedID: feed.ID,
	}, outsider.ID, CommentInclude{})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
}

func TestCommentCreateFeedRoomMismatch(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())
	comments := NewCommentService(db, members, testLogger())

	user := seedUser(t, db, "user")
	roomA := seedRoom(t, db, "a", []*model.User{user}, nil)
	roomB := seedRoom(t, db, "b", []*model.User{user}, nil)
	feedB := seedFeed(t, db, roomB, user, "post in b")

	// 다른 방의 게시글에는 댓글을 붙일 수 없다
	_, err := comments.Create(CreateCommentInput{
		Text: "x", RoomID: roomA.ID, FeedID: feedB.ID,
	}, user.ID, CommentInclude{})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
	assert.Zero(t, reloadFeed(t, db, feedB.ID).CommentCount)
}

func TestCommentFindAll(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())
	comments := NewCommentService(db, members, testLogger())

	editor := seedUser(t, db, "editor")
	outsider := seedUser(t, db, "outsider")
	room := seedRoom(t, db, "study", []*model.User{editor}, nil)
	feed := seedFeed(t, db, room, editor, "post")

	for _, text := range []string{"one", "two"} {
		_, err := comments.Create(CreateCommentInput{
			Text: text, RoomID: room.ID, FeedID: feed.ID,
		}, editor.ID, CommentInclude{})
		require.NoError(t, err)
	}

	found, err := comments.FindAll(room.ID, feed.ID, editor.ID, CommentInclude{})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = comments.FindAll(room.ID, feed.ID, outsider.ID, CommentInclude{})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
}

func TestCommentFindOne(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())
	comments := NewCommentService(db, members, testLogger())

	editor := seedUser(t, db, "editor")
	outsider := seedUser(t, db, "outsider")
	room := seedRoom(t, db, "study", []*model.User{editor}, nil)
	feed := seedFeed(t, db, room, editor, "post")

	created, err := comments.Create(CreateCommentInput{
		Text: "reply", RoomID: room.ID, FeedID: feed.ID,
	}, editor.ID, CommentInclude{})
	require.NoError(t, err)

	found, err := comments.FindOne(created.ID, editor.ID, CommentInclude{User: true})
	require.NoError(t, err)
	require.NotNil(t, found.User)
	assert.Equal(t, editor.ID, found.User.ID)

	// 비멤버와 부재는 동일하게 not_found
	_, err = comments.FindOne(created.ID, outsider.ID, CommentInclude{})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = comments.FindOne(ident.NewID(), editor.ID, CommentInclude{})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCommentUpdateAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())
	comments := NewCommentService(db, members, testLogger())

	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")
	room := seedRoom(t, db, "study", []*model.User{author, other}, nil)
	feed := seedFeed(t, db, room, author, "post")

	created, err := comments.Create(CreateCommentInput{
		Text: "original", RoomID: room.ID, FeedID: feed.ID,
	}, author.ID, CommentInclude{})
	require.NoError(t, err)

	updated, err := comments.Update(created.ID, UpdateCommentInput{Text: "edited"}, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	_, err = comments.Update(created.ID, UpdateCommentInput{Text: "hijack"}, other.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCommentRemoveDecrementsCount(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberService(db, testLogger())
	comments := NewCommentService(db, members, testLogger())

	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")
	room := seedRoom(t, db, "study", []*model.User{author}, []*model.User{other})
	feed := seedFeed(t, db, room, author, "post")

	created, err := comments.Create(CreateCommentInput{
		Text: "reply", RoomID: room.ID, FeedID: feed.ID,
	}, other.ID, CommentInclude{})
	require.NoError(t, err)
	require.Equal(t, 1, reloadFeed(t, db, feed.ID).CommentCount)

	// 비작성자는 삭제 불가
	_, err = comments.Remove(created.ID, author.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, 1, reloadFeed(t, db, feed.ID).CommentCount)

	_, err = comments.Remove(created.ID, other.ID)
	require.NoError(t, err)
	assert.Zero(t, reloadFeed(t, db, feed.ID).CommentCount)

	var count int64
	db.Model(&model.Comment{}).Where("id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
}
