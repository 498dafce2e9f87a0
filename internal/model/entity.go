package model

import (
	"time"
)

// User 사용자
type User struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Institution string  `gorm:"type:varchar(255)" json:"institution"`
	Email       string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string  `gorm:"type:varchar(255);not null" json:"-"`

	// 역정규화된 역인덱스: Room.EditorIDs / Room.ViewerIDs 와 항상 동기화
	EditRoomIDs IDList `json:"editRoomIds"`
	ViewRoomIDs IDList `json:"viewRoomIds"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations (include 지시자가 요청한 경우에만 채워짐)
	EditRooms []Room `gorm:"-" json:"editRooms,omitempty"`
	ViewRooms []Room `gorm:"-" json:"viewRooms,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Room 스터디 방
type Room struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Code        string  `gorm:"type:varchar(50);not null" json:"code"`
	Photo       *string `gorm:"type:text" json:"photo,omitempty"`

	// 역할 배열: 한 사용자는 둘 중 한쪽에만 존재, EditorIDs 는 방이 살아있는 한 비지 않음
	EditorIDs IDList `json:"editorIds"`
	ViewerIDs IDList `json:"viewerIds"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	Editors []User `gorm:"-" json:"editors,omitempty"`
	Viewers []User `gorm:"-" json:"viewers,omitempty"`
	Feeds   []Feed `gorm:"-" json:"feeds,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

// Feed 방 안의 게시글
type Feed struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Text   string `gorm:"type:text;not null" json:"text"`
	RoomID string `gorm:"type:uuid;not null;index" json:"roomId"`
	UserID string `gorm:"type:uuid;not null" json:"userId"`

	// 살아있는 댓글 수와 항상 일치 (댓글 생성/삭제 트랜잭션에서 갱신)
	CommentCount int `gorm:"not null;default:0" json:"commentCount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	User     *User     `gorm:"-" json:"user,omitempty"`
	Comments []Comment `gorm:"-" json:"comments,omitempty"`
}

func (Feed) TableName() string {
	return "feeds"
}

// Comment 게시글 댓글
type Comment struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Text   string `gorm:"type:text;not null" json:"text"`
	FeedID string `gorm:"type:uuid;not null;index" json:"feedId"`
	RoomID string `gorm:"type:uuid;not null;index" json:"roomId"`
	UserID string `gorm:"type:uuid;not null" json:"userId"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	User *User `gorm:"-" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
