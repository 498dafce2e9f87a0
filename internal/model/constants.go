package model

// Role 방 내 역할
type Role string

const (
	RoleNone   Role = "NONE"
	RoleViewer Role = "VIEWER"
	RoleEditor Role = "EDITOR"
)

// String 메서드
func (r Role) String() string {
	return string(r)
}

// IsMember 멤버 여부 (편집자 또는 뷰어)
func (r Role) IsMember() bool {
	return r == RoleViewer || r == RoleEditor
}
