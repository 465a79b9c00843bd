package models

import "time"

// Pagination describes the window applied to a list response. Total counts
// matching records before the window.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type SuccessMeta struct {
	Message    string      `json:"message"`
	Timestamp  string      `json:"timestamp"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// SuccessResponse is the envelope for every 2xx payload.
type SuccessResponse struct {
	Data any         `json:"data"`
	Meta SuccessMeta `json:"meta"`
}

type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for every non-2xx payload.
type ErrorResponse struct {
	Code      int           `json:"code"`
	Message   string        `json:"message"`
	Errors    []ErrorDetail `json:"errors"`
	Timestamp string        `json:"timestamp"`
}

func NewSuccess(message string, data any, pagination *Pagination) SuccessResponse {
	return SuccessResponse{
		Data: data,
		Meta: SuccessMeta{
			Message:    message,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Pagination: pagination,
		},
	}
}

func NewError(code int, message string, details []ErrorDetail) ErrorResponse {
	if details == nil {
		details = []ErrorDetail{}
	}
	return ErrorResponse{
		Code:      code,
		Message:   message,
		Errors:    details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
