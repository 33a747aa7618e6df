package twython

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// AuthenticationTokens runs the first leg of the three-legged OAuth1 dance:
// it fetches a request token and returns the decoded token map plus an
// "auth_url" entry to direct the user to.
//
// callbackURL is where the user is sent back after authorizing (web clients
// only; leave empty for PIN-based flows). forceLogin makes Twitter ask for
// credentials even when a user is already logged in, prefilling the login box
// with screenName.
//
// The calls here go through the session directly rather than the request
// pipeline: the response body is url-encoded, not JSON.
func (c *Client) AuthenticationTokens(ctx context.Context, callbackURL string, forceLogin bool, screenName string) (Token, error) {
	requestURL := c.requestTokenURL()
	if callbackURL != "" {
		requestURL += "?" + url.Values{"oauth_callback": {callbackURL}}.Encode()
	}

	status, body, err := c.rawGet(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, &AuthError{APIError: APIError{Message: string(body), Code: status}}
	}
	if status != http.StatusOK {
		return nil, &APIError{Message: string(body), Code: status}
	}

	tokens, err := parseTokenBody(body)
	if err != nil || len(tokens) == 0 {
		return nil, &APIError{Message: "unable to decode request tokens"}
	}

	authQuery := url.Values{}
	authQuery.Set("oauth_token", tokens["oauth_token"])
	if forceLogin {
		authQuery.Set("force_login", "true")
		authQuery.Set("screen_name", screenName)
	}
	// Servers that did not confirm callback support get the callback the
	// legacy way, as an authorize-URL query parameter.
	if callbackURL != "" && tokens["oauth_callback_confirmed"] != "true" {
		authQuery.Set("oauth_callback", callbackURL)
	}
	tokens["auth_url"] = c.authenticateURL() + "?" + authQuery.Encode()

	return tokens, nil
}

// AuthorizedTokens runs the final leg of the dance, exchanging the verifier
// from the callback (or PIN) for the user's access token pair.
func (c *Client) AuthorizedTokens(ctx context.Context, verifier string) (Token, error) {
	accessURL := c.accessTokenURL() + "?" + url.Values{"oauth_verifier": {verifier}}.Encode()

	_, body, err := c.rawGet(ctx, accessURL)
	if err != nil {
		return nil, err
	}

	tokens, err := parseTokenBody(body)
	if err != nil || len(tokens) == 0 {
		return nil, &APIError{Message: "unable to decode authorized tokens"}
	}
	return tokens, nil
}

// rawGet issues a GET through the signed session without the JSON decode
// pipeline and without touching the last-call snapshot.
func (c *Client) rawGet(ctx context.Context, urlStr string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("GET %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// parseTokenBody decodes a url-encoded token response into a flat map.
// Bare words without a value are dropped, so an HTML error page or empty body
// yields an empty map.
func parseTokenBody(body []byte) (Token, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	tokens := Token{}
	for key := range values {
		if key == "" || values.Get(key) == "" {
			continue
		}
		tokens[key] = values.Get(key)
	}
	return tokens, nil
}
