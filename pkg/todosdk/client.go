package todosdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// SDKClient talks to one todo service instance.
type SDKClient struct {
	BaseURL string

	// Timeout bounds every request, including any redirects it follows.
	Timeout time.Duration

	// HTTPClient serves the cookie-less JSON endpoints.
	HTTPClient *http.Client
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Timeout:    10 * time.Second,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewSession returns an anonymous session with an empty cookie jar.
func (c *SDKClient) NewSession() (*Session, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Session{
		client: c,
		base:   base,
		http:   &http.Client{Jar: jar, Timeout: c.Timeout},
	}, nil
}

// Register creates an account and returns the signed-in session.
func (c *SDKClient) Register(ctx context.Context, username, password, confirmPassword string) (*Session, error) {
	s, err := c.NewSession()
	if err != nil {
		return nil, err
	}
	if err := s.Register(ctx, username, password, confirmPassword); err != nil {
		return nil, err
	}
	return s, nil
}

// Login signs in and returns the session. Each call gets a new token.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	s, err := c.NewSession()
	if err != nil {
		return nil, err
	}
	if err := s.Login(ctx, username, password); err != nil {
		return nil, err
	}
	return s, nil
}
