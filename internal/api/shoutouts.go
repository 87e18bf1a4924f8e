package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ndtran/shoutbox/internal/model"
)

// CreateShoutout posts a new shout-out.
func (c *Client) CreateShoutout(ctx context.Context, req model.ShoutOutCreate) (*model.ShoutOut, error) {
	var s model.ShoutOut
	if err := c.Post(ctx, "/shoutouts", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListShoutouts retrieves the feed, narrowed by the given filter.
func (c *Client) ListShoutouts(ctx context.Context, filter model.ShoutOutFilter) ([]model.ShoutOut, error) {
	params := url.Values{}
	if filter.Department != "" {
		params.Set("department", filter.Department)
	}
	if filter.SenderID != 0 {
		params.Set("sender_id", strconv.Itoa(filter.SenderID))
	}
	if filter.StartDate != "" {
		params.Set("start_date", filter.StartDate)
	}

	path := "/shoutouts"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var shoutouts []model.ShoutOut
	if err := c.Get(ctx, path, &shoutouts); err != nil {
		return nil, err
	}
	return shoutouts, nil
}

// AddComment posts a comment on a shout-out. Content may carry mention
// markup produced by the mention package.
func (c *Client) AddComment(ctx context.Context, shoutoutID int, content string) (*model.Comment, error) {
	body := struct {
		Content string `json:"content"`
	}{Content: content}

	var comment model.Comment
	path := fmt.Sprintf("/shoutouts/%d/comments", shoutoutID)
	if err := c.Post(ctx, path, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ToggleReaction sets, switches, or removes the current user's reaction
// on a shout-out. The backend treats repeating the same type as removal.
func (c *Client) ToggleReaction(ctx context.Context, shoutoutID int, rt model.ReactionType) error {
	body := struct {
		Type model.ReactionType `json:"type"`
	}{Type: rt}

	path := fmt.Sprintf("/shoutouts/%d/reactions", shoutoutID)
	return c.Post(ctx, path, body, nil)
}

// ListReactions retrieves a page of individual reactions on a shout-out,
// optionally restricted to one reaction type.
func (c *Client) ListReactions(
	ctx context.Context,
	shoutoutID int,
	page, limit int,
	rt model.ReactionType,
) ([]model.Reaction, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if rt != "" {
		params.Set("type", string(rt))
	}

	path := fmt.Sprintf("/shoutouts/%d/reactions", shoutoutID)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var reactions []model.Reaction
	if err := c.Get(ctx, path, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}

// DeleteShoutout removes a shout-out. Owner or admin only.
func (c *Client) DeleteShoutout(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/shoutouts/%d", id))
}

// DeleteComment removes a comment. Owner or admin only.
func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/comments/%d", id))
}

// SubmitReport files a moderation report against a shout-out or comment.
func (c *Client) SubmitReport(ctx context.Context, req model.ReportCreate) error {
	return c.Post(ctx, "/reports", req, nil)
}
