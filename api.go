package twython

import (
	"context"
	"io"
)

// Search performs a single search/tweets call. Pagination across pages is
// what SearchGen is for.
func (c *Client) Search(ctx context.Context, params Params) (map[string]any, error) {
	content, err := c.Get(ctx, "search/tweets", params)
	if err != nil {
		return nil, err
	}
	return asObject(content)
}

// VerifyCredentials returns the authenticated user's profile, failing with
// *AuthError when the configured credentials are invalid.
func (c *Client) VerifyCredentials(ctx context.Context, params Params) (map[string]any, error) {
	content, err := c.Get(ctx, "account/verify_credentials", params)
	if err != nil {
		return nil, err
	}
	return asObject(content)
}

// ShowStatus fetches a single tweet by id.
func (c *Client) ShowStatus(ctx context.Context, id string, params Params) (map[string]any, error) {
	p := Params{"id": id}
	for k, v := range params {
		p[k] = v
	}
	content, err := c.Get(ctx, "statuses/show", p)
	if err != nil {
		return nil, err
	}
	return asObject(content)
}

// UpdateStatus posts a tweet. Extra params (in_reply_to_status_id,
// media_ids, ...) are merged in.
func (c *Client) UpdateStatus(ctx context.Context, status string, params Params) (map[string]any, error) {
	p := Params{"status": status}
	for k, v := range params {
		p[k] = v
	}
	content, err := c.Post(ctx, "statuses/update", p)
	if err != nil {
		return nil, err
	}
	return asObject(content)
}

// UploadMedia uploads a media payload to the upload host and returns the
// response, whose media_id_string can be attached to UpdateStatus calls.
func (c *Client) UploadMedia(ctx context.Context, media io.Reader, params Params) (map[string]any, error) {
	p := Params{"media": media}
	for k, v := range params {
		p[k] = v
	}
	content, err := c.Post(ctx, UploadMediaURL, p)
	if err != nil {
		return nil, err
	}
	return asObject(content)
}

// asObject narrows a decoded response to a JSON object.
func asObject(content any) (map[string]any, error) {
	obj, ok := content.(map[string]any)
	if !ok {
		return nil, &APIError{Message: "unexpected response shape: not a JSON object"}
	}
	return obj, nil
}
