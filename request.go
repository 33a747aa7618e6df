package twython

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Request issues an API call. endpoint is either a short resource name such
// as "search/tweets" or a full URL; version selects the API version for short
// names, empty meaning the configured default. The decoded JSON value
// (object, array, or primitive) is returned on success; failures surface as
// *APIError, *AuthError, or *RateLimitError.
func (c *Client) Request(ctx context.Context, method, endpoint string, params Params, version string) (any, error) {
	return c.call(ctx, method, c.resourceURL(endpoint, version), params)
}

// Get is a GET shortcut for Request with the default API version.
func (c *Client) Get(ctx context.Context, endpoint string, params Params) (any, error) {
	return c.Request(ctx, http.MethodGet, endpoint, params, "")
}

// Post is a POST shortcut for Request with the default API version.
func (c *Client) Post(ctx context.Context, endpoint string, params Params) (any, error) {
	return c.Request(ctx, http.MethodPost, endpoint, params, "")
}

// call executes a single request against the resolved URL and records the
// last-call snapshot from the response.
func (c *Client) call(ctx context.Context, method, urlStr string, params Params) (any, error) {
	encoded, files := normalizeParams(params)

	req, err := c.newRequest(ctx, method, urlStr, encoded, files)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, urlStr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.lastCall = &LastCall{
		APICall:    urlStr,
		Cookies:    resp.Cookies(),
		Headers:    resp.Header,
		StatusCode: resp.StatusCode,
		URL:        resp.Request.URL.String(),
		Content:    string(body),
	}

	decoded, apiMessage, err := decodeResponse(body, resp.StatusCode, resp.Header)
	c.lastCall.APIError = apiMessage
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// newRequest builds the outbound request: GET carries params in the query
// string, every other method carries them in the body, as multipart form data
// when file payloads are present. Default headers are applied last so that
// per-client overrides win over the built-ins but never clobber the computed
// Content-Type.
func (c *Client) newRequest(ctx context.Context, method, urlStr string, encoded url.Values, files map[string]io.Reader) (*http.Request, error) {
	var req *http.Request
	var err error
	contentType := ""

	switch {
	case method == http.MethodGet:
		if len(encoded) > 0 {
			sep := "?"
			if strings.Contains(urlStr, "?") {
				sep = "&"
			}
			urlStr += sep + encoded.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, method, urlStr, nil)

	case len(files) > 0:
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		for key, values := range encoded {
			for _, v := range values {
				if werr := writer.WriteField(key, v); werr != nil {
					return nil, fmt.Errorf("write multipart field %q: %w", key, werr)
				}
			}
		}
		for name, reader := range files {
			part, perr := writer.CreateFormFile(name, name)
			if perr != nil {
				return nil, fmt.Errorf("create multipart file %q: %w", name, perr)
			}
			if _, cerr := io.Copy(part, reader); cerr != nil {
				return nil, fmt.Errorf("copy file payload %q: %w", name, cerr)
			}
		}
		if werr := writer.Close(); werr != nil {
			return nil, fmt.Errorf("finalize multipart body: %w", werr)
		}
		contentType = writer.FormDataContentType()
		req, err = http.NewRequestWithContext(ctx, method, urlStr, &buf)

	default:
		contentType = "application/x-www-form-urlencoded"
		req, err = http.NewRequestWithContext(ctx, method, urlStr, strings.NewReader(encoded.Encode()))
	}
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// decodeResponse turns raw response bytes into a decoded JSON value or a
// typed error. Status-based classification takes priority over JSON validity:
// any status above 304 fails with a classified error whether or not the body
// parsed, and a parse failure alone only fails on statuses outside
// {200, 201, 202} — Twitter occasionally returns malformed bodies on accepted
// statuses, which decode to an empty object instead of failing.
//
// apiMessage is the extracted error message for the last-call snapshot, set
// only for status-classified failures.
func decodeResponse(body []byte, status int, headers http.Header) (decoded any, apiMessage string, err error) {
	var content any
	jsonErr := json.Unmarshal(body, &content) != nil
	if jsonErr {
		content = map[string]any{}
	}

	if status > 304 {
		message := errorMessage(body)
		return nil, message, classifyError(status, message, headers)
	}

	if jsonErr && status != http.StatusOK && status != http.StatusCreated && status != http.StatusAccepted {
		return nil, "", &APIError{Message: "Response was not valid JSON, unable to decode."}
	}

	if jsonErr {
		slog.Debug("tolerating malformed JSON body on accepted status", slog.Int("status", status))
	}
	return content, "", nil
}
