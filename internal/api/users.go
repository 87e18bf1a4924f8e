package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ndtran/shoutbox/internal/model"
)

// ListUsers retrieves all users, optionally filtered by department.
func (c *Client) ListUsers(ctx context.Context, department string) ([]model.User, error) {
	path := "/users"
	if department != "" {
		path += "?department=" + url.QueryEscape(department)
	}

	var users []model.User
	if err := c.Get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser retrieves a single user by id.
func (c *Client) GetUser(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	if err := c.Get(ctx, fmt.Sprintf("/users/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe patches the current user's editable profile fields and
// returns the updated profile.
func (c *Client) UpdateMe(ctx context.Context, upd model.UserUpdate) (*model.User, error) {
	var user model.User
	if err := c.Patch(ctx, "/users/me", upd, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadProfilePicture uploads an image file as the current user's
// profile picture and returns the updated profile.
func (c *Client) UploadProfilePicture(ctx context.Context, filePath string) (*model.User, error) {
	var user model.User
	err := c.PostFile(ctx, "/users/me/picture", "file", filePath, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteProfilePicture removes the current user's profile picture.
func (c *Client) DeleteProfilePicture(ctx context.Context) error {
	return c.Delete(ctx, "/users/me/picture")
}

// MyShoutouts retrieves the shout-outs the current user has sent.
func (c *Client) MyShoutouts(ctx context.Context) ([]model.ShoutOut, error) {
	var shoutouts []model.ShoutOut
	if err := c.Get(ctx, "/users/me/shoutouts", &shoutouts); err != nil {
		return nil, err
	}
	return shoutouts, nil
}

// TaggedShoutouts retrieves the shout-outs the current user was tagged in.
func (c *Client) TaggedShoutouts(ctx context.Context) ([]model.ShoutOut, error) {
	var shoutouts []model.ShoutOut
	if err := c.Get(ctx, "/users/me/tagged", &shoutouts); err != nil {
		return nil, err
	}
	return shoutouts, nil
}

// DeleteUser removes a user account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/users/%d", id))
}
