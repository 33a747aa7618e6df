package twython

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// defaultErrorMessage is used when the error body carries no usable message.
const defaultErrorMessage = "An error occurred processing your request."

// APIError is the generic Twitter API error: any non-success status code that
// is neither an auth failure nor a rate limit, plus client-side failures such
// as undecodable token responses.
type APIError struct {
	Message string

	// Code is the HTTP status code, 0 for errors without an HTTP response.
	Code int
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Code)
	}
	return e.Message
}

// AuthError indicates invalid or expired credentials: HTTP 401, or a response
// body containing "Bad Authentication data" (Twitter returns that on a 400 for
// bad app keys and user tokens).
type AuthError struct {
	APIError
}

// RateLimitError indicates HTTP 429. RetryAfter carries the advisory
// retry-after header value in seconds, 0 when the header was absent. The
// client never retries on its own; backoff is the caller's decision.
type RateLimitError struct {
	APIError
	RetryAfter int
}

// errorMessage extracts the error message from a Twitter error body.
// Twitter's shape is {"errors": [{"message": ..., "code": ...}]}, but the
// errors field is occasionally a scalar, and the body may not be JSON at all.
func errorMessage(body []byte) string {
	errs := gjson.GetBytes(body, "errors")
	if errs.IsArray() {
		if arr := errs.Array(); len(arr) > 0 {
			return arr[0].Get("message").String()
		}
	}
	if errs.Exists() {
		return errs.String()
	}
	return defaultErrorMessage
}

// classifyError maps a failed response's status, message, and headers to the
// typed error for it. Only called for status codes > 304.
func classifyError(status int, message string, headers http.Header) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{
			APIError:   APIError{Message: message, Code: status},
			RetryAfter: retryAfterSeconds(headers),
		}
	case status == http.StatusUnauthorized || strings.Contains(message, "Bad Authentication data"):
		return &AuthError{APIError: APIError{Message: message, Code: status}}
	default:
		return &APIError{Message: message, Code: status}
	}
}

// retryAfterSeconds parses the retry-after header, 0 if missing or malformed.
func retryAfterSeconds(headers http.Header) int {
	v := headers.Get("Retry-After")
	if v == "" {
		return 0
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
