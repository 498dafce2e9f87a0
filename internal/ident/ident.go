package ident

import (
	"github.com/google/uuid"
)

// NewID 새 엔티티 ID 발급 (canonical UUID)
func NewID() string {
	return uuid.NewString()
}

// IsValidID ID 형식 검증.
// uuid.Parse 는 브레이스/URN/하이픈 생략 등 비표준 표기도 허용하므로
// 재직렬화 결과가 입력과 동일한 canonical 형태만 통과시킨다.
func IsValidID(s string) bool {
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.String() == s
}
