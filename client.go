// Package twython is a client for the Twitter REST API (v1.1): it signs
// requests with OAuth1 app-only or user-context credentials, decodes JSON
// responses defensively, classifies errors into typed values, runs the
// three-legged authorization dance, and paginates search results lazily.
package twython

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dghubble/oauth1"
)

// Version is the library version, reported in the default User-Agent.
const Version = "1.0.0"

const defaultUserAgent = "go-twython v" + Version

// Client is a Twitter REST API client. It owns a persistent HTTP session and
// the snapshot of the most recent call.
//
// A Client is not safe for concurrent use: the last-call snapshot is
// overwritten in place on every request, so concurrent callers race on it
// (last writer wins). Use one Client per goroutine or synchronize externally.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	headers    map[string]string
	lastCall   *LastCall
}

// NewClient creates a Twitter client for the given configuration. The signing
// mode follows the credentials: app key + secret alone sign app-only, a full
// set of four signs with user context, anything else leaves requests unsigned.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	base := cfg.HTTPClient
	if base == nil {
		transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
		if cfg.Proxy != "" {
			proxyURL, err := url.Parse(cfg.Proxy)
			if err != nil {
				return nil, fmt.Errorf("parse proxy url: %w", err)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		if cfg.InsecureSkipTLS {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		base = &http.Client{Transport: transport}
	}

	headers := map[string]string{"User-Agent": defaultUserAgent}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	httpClient := base
	if mode := cfg.signMode(); mode != signNone {
		oauthConfig := oauth1.NewConfig(cfg.AppKey, cfg.AppSecret)
		token := oauth1.NewToken(cfg.OAuthToken, cfg.OAuthTokenSecret)
		ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)
		httpClient = oauthConfig.Client(ctx, token)
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		headers:    headers,
	}, nil
}

// LastCall returns a copy of the most recent call's diagnostic snapshot, or
// nil if no call has been made yet.
func (c *Client) LastCall() *LastCall {
	if c.lastCall == nil {
		return nil
	}
	snapshot := *c.lastCall
	return &snapshot
}

// LastCallHeader returns the named response header from the most recent API
// call. ok reports whether the header was present. Calling it before any API
// call is an error; a missing header after a call is not.
//
// Most useful for x-rate-limit-limit, x-rate-limit-remaining,
// x-rate-limit-class and x-rate-limit-reset.
func (c *Client) LastCallHeader(name string) (value string, ok bool, err error) {
	if c.lastCall == nil {
		return "", false, &APIError{Message: "LastCallHeader must be called after an API call, it delivers header information"}
	}
	if values := c.lastCall.Headers.Values(name); len(values) > 0 {
		return values[0], true, nil
	}
	return "", false, nil
}
