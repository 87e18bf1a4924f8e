package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ndtran/shoutbox/internal/model"
)

// UpdateUserRole changes a user's role. Admin only.
func (c *Client) UpdateUserRole(ctx context.Context, userID int, role model.Role) error {
	path := fmt.Sprintf("/users/%d/role?role=%s", userID, url.QueryEscape(string(role)))
	return c.Patch(ctx, path, nil, nil)
}

// AdminStats retrieves the aggregate dashboard numbers.
func (c *Client) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	if err := c.Get(ctx, "/admin/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// TopContributors retrieves the users ranked by shout-outs sent.
func (c *Client) TopContributors(ctx context.Context) ([]model.TopContributor, error) {
	var contributors []model.TopContributor
	if err := c.Get(ctx, "/admin/stats/top-contributors", &contributors); err != nil {
		return nil, err
	}
	return contributors, nil
}

// ShoutoutsByDepartment retrieves per-department shout-out counts.
func (c *Client) ShoutoutsByDepartment(ctx context.Context) ([]model.DepartmentStats, error) {
	var stats []model.DepartmentStats
	if err := c.Get(ctx, "/admin/stats/shoutouts-by-department", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ListReports retrieves moderation reports, optionally filtered by status.
func (c *Client) ListReports(ctx context.Context, status model.ReportStatus) ([]model.Report, error) {
	path := "/admin/reports"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var reports []model.Report
	if err := c.Get(ctx, path, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateReportStatus moves a report through the moderation workflow.
func (c *Client) UpdateReportStatus(ctx context.Context, reportID int, status model.ReportStatus) error {
	body := struct {
		Status model.ReportStatus `json:"status"`
	}{Status: status}

	return c.Patch(ctx, fmt.Sprintf("/admin/reports/%d/status", reportID), body, nil)
}
