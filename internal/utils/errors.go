package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidURL          ErrorCode = "INVALID_URL"
	ErrorCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrorCodeTransportError      ErrorCode = "TRANSPORT_ERROR"
	ErrorCodeNoMatchingVariant   ErrorCode = "NO_MATCHING_VARIANT"
	ErrorCodeRelayIOError        ErrorCode = "RELAY_IO_ERROR"
	ErrorCodeRateLimitExceeded   ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeValidationError     ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Common error constructors

func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

func NewInvalidURLError(url string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeInvalidURL,
		"Could not extract a video ID from the provided URL",
		http.StatusBadRequest,
		map[string]interface{}{
			"expected_format": "https://www.youtube.com/watch?v=VIDEO_ID or https://youtu.be/VIDEO_ID",
			"provided":        url,
		},
	)
}

// NewUpstreamError wraps a structured extraction failure. The sub-reason
// changes as the upstream evolves, so it is carried in the details for
// diagnosis rather than parsed by callers.
func NewUpstreamError(err error) *AppError {
	return NewErrorWithDetails(
		ErrorCodeUpstreamUnavailable,
		"The video platform rejected the extraction attempt",
		http.StatusBadGateway,
		map[string]interface{}{
			"reason": err.Error(),
		},
	)
}

func NewTransportError(err error) *AppError {
	return NewErrorWithDetails(
		ErrorCodeTransportError,
		"Network failure while talking to the video platform",
		http.StatusBadGateway,
		map[string]interface{}{
			"reason": err.Error(),
		},
	)
}

func NewNoMatchingVariantError(format string, quality string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeNoMatchingVariant,
		"No suitable stream found for the requested format and quality",
		http.StatusNotFound,
		map[string]interface{}{
			"format":  format,
			"quality": quality,
		},
	)
}

func NewRelayError(err error) *AppError {
	return NewErrorWithDetails(
		ErrorCodeRelayIOError,
		"Failed to prepare the media file for download",
		http.StatusInternalServerError,
		map[string]interface{}{
			"reason": err.Error(),
		},
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
