package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"phd-timeoff/internal/core/domain"
)

// Remote client errors
var (
	ErrUnavailable   = errors.New("upstream backend unavailable")
	ErrBadResponse   = errors.New("upstream returned a malformed response")
	ErrRequestFailed = errors.New("upstream rejected the request")
)

// Envelope is the upstream response shape: {success, data?, message?}
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client talks to the upstream time-off backend. Every call is best-effort:
// callers treat any returned error as "unreachable" and degrade locally.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates an upstream client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{},
	}
}

// do performs a request, unwraps the envelope and decodes data into out.
// A non-2xx status, a success=false envelope, or a payload that does not
// match out's shape are all reported as errors; the caller cannot tell a
// network failure from a malformed payload, which is intentional.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if !env.Success {
		if env.Message != "" {
			return fmt.Errorf("%w: %s", ErrRequestFailed, env.Message)
		}
		return ErrRequestFailed
	}

	if out != nil {
		if env.Data == nil {
			return ErrBadResponse
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}
	return nil
}

// ============================================================
// Leaves
// ============================================================

func (c *Client) FetchLeaves(ctx context.Context) ([]domain.Leave, error) {
	var leaves []domain.Leave
	if err := c.do(ctx, http.MethodGet, "/leaves/", nil, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

func (c *Client) CreateLeave(ctx context.Context, leave domain.Leave) error {
	return c.do(ctx, http.MethodPost, "/leaves/", leave, nil)
}

func (c *Client) UpdateLeave(ctx context.Context, leave domain.Leave) error {
	return c.do(ctx, http.MethodPut, "/leaves/", leave, nil)
}

func (c *Client) DeleteLeave(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/leaves/?id="+url.QueryEscape(id), nil, nil)
}

// ============================================================
// Users
// ============================================================

func (c *Client) FetchUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, user domain.User) error {
	return c.do(ctx, http.MethodPost, "/users/", user, nil)
}

func (c *Client) UpdateUser(ctx context.Context, user domain.User) error {
	return c.do(ctx, http.MethodPut, "/users/", user, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/?id="+url.QueryEscape(id), nil, nil)
}

// ============================================================
// Holidays
// ============================================================

func (c *Client) FetchHolidays(ctx context.Context) ([]domain.Holiday, error) {
	var holidays []domain.Holiday
	if err := c.do(ctx, http.MethodGet, "/holidays/", nil, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

func (c *Client) CreateHoliday(ctx context.Context, holiday domain.Holiday) error {
	return c.do(ctx, http.MethodPost, "/holidays/", holiday, nil)
}

func (c *Client) UpdateHoliday(ctx context.Context, holiday domain.Holiday) error {
	return c.do(ctx, http.MethodPut, "/holidays/", holiday, nil)
}

func (c *Client) DeleteHoliday(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/holidays/?id="+url.QueryEscape(id), nil, nil)
}

// ============================================================
// Auth
// ============================================================

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the upstream backend.
func (c *Client) Login(ctx context.Context, email, pwd string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: pwd}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
