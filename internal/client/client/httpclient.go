package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
)

// HTTPClient is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:4000".
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Signup(ctx context.Context, username, email, password string) (*User, error) {
	var resp AuthResponse
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, false, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, loginID, password string) (*User, error) {
	var resp AuthResponse
	body := map[string]string{"loginId": loginID, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp.User, nil
}

// Logout forgets the token. Tokens are stateless, so the server is not told.
func (c *HTTPClient) Logout() {
	c.setToken("")
}

func (c *HTTPClient) LoggedIn() bool {
	return c.getToken() != ""
}

func (c *HTTPClient) Me(ctx context.Context) (*Profile, error) {
	var resp struct {
		User Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, false, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, false, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, title string, content *string) (*Post, error) {
	var post Post
	body := map[string]any{"title": title, "content": content}
	if err := c.do(ctx, http.MethodPost, "/api/posts", body, false, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

func (c *HTTPClient) getToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends body as JSON and decodes a 2xx response into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, authenticated bool, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if authenticated {
		token := c.getToken()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Error
	}

	if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusBadGateway {
		return errors.Join(ErrUnavailable, apiErr)
	}
	return apiErr
}
