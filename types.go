package twython

import "net/http"

// Params holds request parameters for a single API call. Values may be
// primitives, bools (sent as lowercase "true"/"false"), slices (comma-joined
// into a single value), or io.Reader payloads (sent as multipart file parts).
type Params map[string]any

// Token is a decoded url-encoded token response from the OAuth endpoints,
// e.g. {"oauth_token": ..., "oauth_token_secret": ...}.
type Token map[string]string

// LastCall is a diagnostic snapshot of the most recent API call. It is
// overwritten on every call; rate-limit headers such as x-rate-limit-remaining
// can be read from Headers after a call completes.
type LastCall struct {
	// APICall is the resolved URL the call was issued against.
	APICall string

	// APIError holds the classified error message for a failed call,
	// empty on success.
	APIError string

	Cookies    []*http.Cookie
	Headers    http.Header
	StatusCode int

	// URL is the final URL of the response, after any redirects.
	URL string

	// Content is the raw response body as text.
	Content string
}
