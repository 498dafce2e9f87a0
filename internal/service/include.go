package service

// include 지시자: 호출자가 요청한 연관 엔티티만 추가 조회하기 위한 힌트.
// 어떤 값이든 연산의 성공/실패에는 영향을 주지 않는다.

// RoomInclude 방 응답에 포함할 연관 엔티티
type RoomInclude struct {
	Editors bool
	Viewers bool
	Feeds   bool
}

// FeedInclude 게시글 응답에 포함할 연관 엔티티
type FeedInclude struct {
	User     bool
	Comments bool
}

// CommentInclude 댓글 응답에 포함할 연관 엔티티
type CommentInclude struct {
	User bool
}

// UserInclude 사용자 응답에 포함할 연관 엔티티
type UserInclude struct {
	EditRooms bool
	ViewRooms bool
}
