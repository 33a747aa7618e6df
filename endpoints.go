package twython

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the Twitter REST API host. Override ClientConfig.BaseURL
// to point the client at a test server.
const DefaultBaseURL = "https://api.twitter.com"

// DefaultAPIVersion is the REST API version used when none is given.
const DefaultAPIVersion = "1.1"

// UploadMediaURL is the media upload endpoint, which lives on a separate host
// and is therefore addressed as a full URL.
const UploadMediaURL = "https://upload.twitter.com/1.1/media/upload.json"

// resourceURL builds a versioned resource URL, e.g. search/tweets ->
// https://api.twitter.com/1.1/search/tweets.json. Endpoints that already
// carry a scheme are used verbatim.
func (c *Client) resourceURL(endpoint, version string) string {
	if hasScheme(endpoint) {
		return endpoint
	}
	if version == "" {
		version = c.cfg.APIVersion
	}
	return fmt.Sprintf("%s/%s/%s.json", c.cfg.BaseURL, version, endpoint)
}

func (c *Client) requestTokenURL() string {
	return c.cfg.BaseURL + "/oauth/request_token"
}

func (c *Client) accessTokenURL() string {
	return c.cfg.BaseURL + "/oauth/access_token"
}

func (c *Client) authenticateURL() string {
	return c.cfg.BaseURL + "/oauth/authenticate"
}

func hasScheme(endpoint string) bool {
	return strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://")
}
