package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/daap14/teamdir/internal/directory"
)

// errorBody is the error document Appwrite returns with non-2xx responses.
type errorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// get performs a GET on path and decodes the JSON response into T.
// Extra headers are applied after the project header.
func get[T any](ctx context.Context, c *Client, path string, header http.Header) (res T, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return res, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerProject, c.projectID)
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return res, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return res, fmt.Errorf("reading response of GET %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &directory.APIError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
		}
		var body errorBody
		if json.Unmarshal(data, &body) == nil {
			apiErr.Type = body.Type
			apiErr.Message = body.Message
		}
		return res, apiErr
	}

	ctype, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if ctype != "application/json" {
		return res, fmt.Errorf("%w: GET %s: content type %q", directory.ErrUnexpectedResponse, path, ctype)
	}

	if err := json.Unmarshal(data, &res); err != nil {
		return res, fmt.Errorf("%w: GET %s: %v", directory.ErrUnexpectedResponse, path, err)
	}

	return res, nil
}

// serverHeader authenticates a request with the project API key.
func (c *Client) serverHeader() http.Header {
	h := http.Header{}
	h.Set(headerKey, c.apiKey)
	return h
}
