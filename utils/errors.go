package utils

import (
	"fmt"
	"net/http"
)

// Error codes shared by services and controllers.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyPaid       = "ALREADY_PAID"
	CodeAlreadyApproved   = "ALREADY_APPROVED"
	CodeAlreadyCancelled  = "ALREADY_CANCELLED"
	CodeActiveShiftExists = "ACTIVE_SHIFT_EXISTS"
	CodeNoActiveShift     = "NO_ACTIVE_SHIFT"
	CodeFoodUnavailable   = "FOOD_UNAVAILABLE"
)

// AppError adalah error aplikasi dengan kode yang bisa dipetakan ke HTTP status.
type AppError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// ValidationError -> input tidak valid
func ValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError -> entitas tidak ditemukan (atau sudah soft-deleted)
func NotFoundError(entity string) *AppError {
	return &AppError{Code: CodeNotFound, Message: entity + " not found"}
}

// FoodUnavailableError membawa daftar food yang ada di stop-list
func FoodUnavailableError(foodIDs []uint) *AppError {
	return &AppError{
		Code:    CodeFoodUnavailable,
		Message: "food is not available",
		Details: map[string]interface{}{"food_ids": foodIDs},
	}
}

// HTTPStatusForCode memetakan kode error ke HTTP status
func HTTPStatusForCode(code string) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyPaid, CodeAlreadyApproved, CodeAlreadyCancelled:
		return http.StatusConflict
	case CodeActiveShiftExists, CodeNoActiveShift:
		return http.StatusConflict
	case CodeFoodUnavailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
