package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind 실패 종류 (전송 계층 상태 코드와는 분리된 추상 분류)
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// Error 서비스 계층에서 핸들러로 전달되는 타입드 실패
type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus Kind 를 HTTP 상태 코드로 변환
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidArgument:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// WithDetails 추가 정보 부착
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// InvalidArgument 잘못된 입력
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// Conflict 유일성/멤버십 불변식 위반
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFound 부재 또는 비멤버 (존재 여부 비노출 정책상 구분하지 않음)
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal 인프라 오류
func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// From err 에서 *Error 추출, 실패 시 nil
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsKind err 가 주어진 Kind 인지 확인
func IsKind(err error, kind Kind) bool {
	ae := From(err)
	return ae != nil && ae.Kind == kind
}
