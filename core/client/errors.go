package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/leofalp/chatsorter/internal/utils"
)

var (
	// ErrMissingAPIKey is returned by New when the API key is empty.
	ErrMissingAPIKey = errors.New("chatsorter: API key is required")

	// ErrUnauthorized matches a ResponseError with status 401 or 403.
	ErrUnauthorized = errors.New("chatsorter: invalid or missing API key")

	// ErrRateLimited matches a ResponseError with status 429.
	ErrRateLimited = errors.New("chatsorter: usage limit exceeded")
)

// TransportError reports a request that produced no response: it could not
// be built or sent, the connection failed or timed out, or the context was
// cancelled.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chatsorter: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError reports a non-2xx status. Body holds the raw response body.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("chatsorter: %s %s: HTTP %d %s: %s",
		e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), utils.TruncateString(e.Body, 200))
}

// Is lets errors.Is match ErrUnauthorized and ErrRateLimited by status code.
func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// StatusCode returns the HTTP status carried by a *ResponseError in err's
// chain, or 0.
func StatusCode(err error) int {
	var target *ResponseError
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}
