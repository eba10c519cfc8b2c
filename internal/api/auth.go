package api

import (
	"context"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobhunt/internal/models"
)

func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	var out models.AuthResult
	err := c.Request(ctx, fhttp.MethodPost, "/api/auth/login", models.Credentials{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Signup(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	var out models.AuthResult
	err := c.Request(ctx, fhttp.MethodPost, "/api/auth/signup", creds, &out)
	return out, err
}

// Me returns the account behind the current bearer token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var raw struct {
		models.User
		Wrapped *models.User `json:"user"`
	}
	if err := c.Request(ctx, fhttp.MethodGet, "/api/auth/me", nil, &raw); err != nil {
		return models.User{}, err
	}
	if raw.Wrapped != nil {
		return *raw.Wrapped, nil
	}
	return raw.User, nil
}

func (c *Client) Profile(ctx context.Context) (models.Profile, error) {
	var out models.Profile
	err := c.Request(ctx, fhttp.MethodGet, "/api/profile", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	var out models.Profile
	err := c.Request(ctx, fhttp.MethodPut, "/api/profile", profile, &out)
	return out, err
}
