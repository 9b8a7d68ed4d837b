package gdrive

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for Drive status classification.
// Use errors.Is(err, gdrive.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("drive: bad request")
	ErrUnauthorized = errors.New("drive: unauthorized")
	ErrForbidden    = errors.New("drive: forbidden")
	ErrNotFound     = errors.New("drive: not found")
	ErrThrottled    = errors.New("drive: throttled")
	ErrServerError  = errors.New("drive: server error")
	ErrUnexpected   = errors.New("drive: unexpected response")
)

// APIError wraps a sentinel with the HTTP status, the first error reason and
// the API message.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("drive: HTTP %d (%s): %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("drive: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}
		return ErrUnexpected
	}
}

// rateLimitReasons are 403 reasons Drive uses for quota exhaustion.
var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// wrapAPIError converts a *googleapi.Error into an *APIError. Transport
// errors are returned wrapped with op.
func wrapAPIError(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	apiErr := &APIError{
		StatusCode: gerr.Code,
		Message:    gerr.Message,
		Err:        classifyStatus(gerr.Code),
	}
	if len(gerr.Errors) > 0 {
		apiErr.Reason = gerr.Errors[0].Reason
		if apiErr.Message == "" {
			apiErr.Message = gerr.Errors[0].Message
		}
	}
	if gerr.Code == http.StatusForbidden && rateLimitReasons[apiErr.Reason] {
		apiErr.Err = ErrThrottled
	}
	return fmt.Errorf("%s: %w", op, apiErr)
}
