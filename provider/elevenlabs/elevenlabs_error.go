package elevenlabs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/versemix/versemix/tts"
)

var (
	ErrAPIKeyRequired  error = errors.New("api key is required")
	ErrVoiceIDRequired error = errors.New("voice id is required")

	ErrAuthentication error = errors.New("authentication error")
	ErrRateLimit      error = errors.New("rate limit error")
	ErrInternalServer error = errors.New("internal server error")
	ErrUnknown        error = errors.New("unknown error")
)

// StatusError carries the vendor's error message alongside the mapped sentinel.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("elevenlabs: status %d: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func getErrorByStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthentication
	case http.StatusUnprocessableEntity:
		return tts.ErrUnprocessableContent
	case http.StatusTooManyRequests:
		return ErrRateLimit
	case http.StatusInternalServerError:
		return ErrInternalServer
	}
	return ErrUnknown
}
