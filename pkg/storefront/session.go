package storefront

import (
	"context"
	"net/http"
)

// Login opens a session. The session cookie lands in the client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	return c.do(ctx, http.MethodPost, "/api/login", nil, creds, nil)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.do(ctx, http.MethodPost, "/api/register", nil, reg, nil)
}

// Me returns the profile behind the current session.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile saves the account page form and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPost, "/api/profile", nil, update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SessionActive checks /api/me. Any failure, transport included, counts as a guest.
func (c *Client) SessionActive(ctx context.Context) bool {
	return c.do(ctx, http.MethodGet, "/api/me", nil, nil, nil) == nil
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil, nil)
}
