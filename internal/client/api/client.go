// Package api is a small HTTP client for the account service, used by the
// interactive CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the bearer token obtained by Register.
func (c *Client) Token() string { return c.token }

// SetToken installs a previously obtained token for protected calls.
func (c *Client) SetToken(token string) { c.token = token }

// Profile is the server's caller-facing account projection.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

func (e *errorResponse) message() string {
	if len(e.Errors) > 0 {
		return strings.Join(e.Errors, "; ")
	}
	return e.Error
}

// Register creates an account and stores the returned bearer token on the
// client for subsequent calls.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/users", map[string]string{
		"name": name, "email": email, "password": password,
	}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// GetProfile fetches the authenticated account's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	p := &Profile{}
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ChangePassword rotates the account secret.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/api/users", map[string]string{
		"oldPassword": oldPassword, "newPassword": newPassword,
	}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.message() != "" {
			return fmt.Errorf("server: %s", errResp.message())
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
