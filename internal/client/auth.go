package client

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
)

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (auth.LoginResponse, error) {
	req := auth.LoginRequest{Email: email, Password: password, RememberMe: rememberMe}
	req.Normalize()

	var resp auth.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return auth.LoginResponse{}, err
	}
	c.SetToken(resp.Token)
	return resp, nil
}

// Logout revokes the token on the server and forgets it locally, even when the
// server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.Token() == "" {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) Me(ctx context.Context) (user.UserResponse, error) {
	var resp user.UserResponse
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp)
	return resp, err
}
