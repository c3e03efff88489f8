package api

import (
	"context"
	"net/http"
	"net/url"
)

// Download fetches a binary endpoint (the xlsx report). These bypass the
// envelope and stream the file directly, but still ride the same bearer and
// refresh-once protocol; error responses do carry the envelope.
func (c *Client) Download(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	resp, body, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query}, 0)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode >= 400 {
		return nil, "", c.failure(resp.StatusCode, body)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
