package twython

import "net/http"

// ClientConfig holds credentials and transport settings for the client.
// All fields are read once at construction.
type ClientConfig struct {
	// AppKey and AppSecret are the application's OAuth1 consumer credentials.
	AppKey    string
	AppSecret string

	// OAuthToken and OAuthTokenSecret are a user's delegated credentials.
	// When both are set alongside the app credentials, requests are signed
	// with full user context; with only app credentials, app-only.
	OAuthToken       string
	OAuthTokenSecret string

	// Headers are default headers sent on every request. They override the
	// built-in defaults (User-Agent) on conflict.
	Headers map[string]string

	// Proxy is an optional proxy URL for all outbound requests.
	Proxy string

	// InsecureSkipTLS disables TLS certificate verification. Useful against
	// development servers only.
	InsecureSkipTLS bool

	// BaseURL overrides the API host. Default: DefaultBaseURL.
	BaseURL string

	// APIVersion is the REST API version for short endpoint names.
	// Default: DefaultAPIVersion.
	APIVersion string

	// HTTPClient overrides the underlying HTTP client. Proxy and
	// InsecureSkipTLS are ignored when set; request signing still applies.
	HTTPClient *http.Client
}

// defaults fills in zero-value config fields.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
}

// signMode categorizes the credential combinations the signer recognizes.
type signMode int

const (
	signNone signMode = iota // no usable credentials, requests go unsigned
	signApp                  // app key + secret only
	signUser                 // app key + secret + user token + token secret
)

// signMode returns the signing mode for the configured credentials. Partial
// user credentials fall back to unsigned, mirroring the credential rules of
// the upstream API.
func (cfg *ClientConfig) signMode() signMode {
	if cfg.AppKey == "" || cfg.AppSecret == "" {
		return signNone
	}
	switch {
	case cfg.OAuthToken != "" && cfg.OAuthTokenSecret != "":
		return signUser
	case cfg.OAuthToken == "" && cfg.OAuthTokenSecret == "":
		return signApp
	default:
		return signNone
	}
}
