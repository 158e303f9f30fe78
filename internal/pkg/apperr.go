package pkg

import "net/http"

// 稳定的机器可读错误码，前端按 code 分支，属于线上契约，不可改动
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeMissingDate          = "MISSING_DATE"
	CodeTokenMissing         = "TOKEN_MISSING"
	CodeTokenInvalid         = "TOKEN_INVALID"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeRefreshMissing       = "REFRESH_MISSING"
	CodeRefreshInvalid       = "REFRESH_INVALID"
	CodeRefreshExpired       = "REFRESH_EXPIRED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeForbiddenNotMember   = "FORBIDDEN_NOT_MEMBER"
	CodeForbiddenItem        = "FORBIDDEN_ITEM"
	CodeForbiddenSelfBooking = "FORBIDDEN_SELF_BOOKING"
	CodeForbiddenAdminOnly   = "FORBIDDEN_ADMIN_ONLY"
	// 保留原始拼写
	CodeInvalidBookingStatus = "INVALIDE_BOOKING_STATUS"
	CodeNotFound             = "NOT_FOUND"
	CodeInternal             = "INTERNAL_ERROR"
)

// AppError 路由层能识别并序列化的带状态码错误
type AppError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Code + ": " + e.Message
}

func NewValidation(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: msg}
}

func NewBadRequest(code, msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: code, Message: msg}
}

func NewUnauthorized(code, msg string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Code: code, Message: msg}
}

func NewForbidden(code, msg string) *AppError {
	return &AppError{Status: http.StatusForbidden, Code: code, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: msg}
}
