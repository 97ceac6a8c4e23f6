// Package appwrite implements the directory interfaces against the Appwrite
// REST API (Teams, Account and Health services).
package appwrite

import (
	"net/http"
	"strings"
	"time"

	"github.com/daap14/teamdir/internal/directory"
)

const (
	headerProject = "X-Appwrite-Project"
	headerKey     = "X-Appwrite-Key"
	headerJWT     = "X-Appwrite-JWT"
)

var (
	_ directory.TeamsDirectory  = (*Client)(nil)
	_ directory.AccountResolver = (*Client)(nil)
	_ directory.HealthChecker   = (*Client)(nil)
)

// Client is an Appwrite REST client scoped to a single project.
type Client struct {
	endpoint   string
	projectID  string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// Option is a functional option for the client.
type Option func(*Client)

// NewClient creates a client for the project at endpoint (for example
// https://cloud.appwrite.io/v1). The API key authenticates server calls.
func NewClient(endpoint, projectID, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:  strings.TrimRight(endpoint, "/"),
		projectID: projectID,
		apiKey:    apiKey,
		userAgent: "teamdir/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// WithHTTPClient sets the HTTP client reused in all requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = d
	}
}

// WithVersion sets the version reported in the User-Agent header.
func WithVersion(version string) Option {
	return func(c *Client) {
		c.userAgent = "teamdir/" + version
	}
}

// Endpoint returns the API base URL of the client.
func (c *Client) Endpoint() string {
	return c.endpoint
}
