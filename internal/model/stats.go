package model

// AdminStats is the top-level aggregate returned by GET /admin/stats.
type AdminStats struct {
	TotalShoutouts      int              `json:"total_shoutouts"`
	TotalUsers          int              `json:"total_users"`
	MostRecognizedUsers []RecognizedUser `json:"most_recognized_users"`
}

// RecognizedUser is a user ranked by how often they were tagged.
type RecognizedUser struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Count             int    `json:"count"`
}

// TopContributor is a user ranked by shout-outs sent.
type TopContributor struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Department         string `json:"department"`
	ProfilePictureURL  string `json:"profile_picture_url,omitempty"`
	TotalShoutoutsSent int    `json:"total_shoutouts_sent"`
}

// DepartmentStats counts shout-outs received per department.
type DepartmentStats struct {
	Department    string `json:"department"`
	ShoutoutCount int    `json:"shoutout_count"`
}
