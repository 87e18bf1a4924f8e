package api

import (
	"context"

	"github.com/ndtran/shoutbox/internal/model"
)

// TokenPair is the credential pair issued by login and registration.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Credentials is the request body for POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the request body for POST /auth/register.
type Registration struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var pair TokenPair
	if err := c.Post(ctx, "/auth/login", creds, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates an account and returns its token pair.
func (c *Client) Register(ctx context.Context, reg Registration) (*TokenPair, error) {
	var pair TokenPair
	if err := c.Post(ctx, "/auth/register", reg, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Me resolves the profile of the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
