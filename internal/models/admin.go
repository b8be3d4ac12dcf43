package models

import "time"

// Task is a work item inside a delivery project.
type Task struct {
	ID        string     `json:"id,omitempty"`
	ProjectID string     `json:"project_id"`
	Title     string     `json:"title"`
	Done      bool       `json:"done"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// DashboardMetrics are the counters shown at the top of the admin dashboard.
type DashboardMetrics struct {
	OpenRequests   int `json:"open_requests"`
	ActiveProjects int `json:"active_projects"`
	PaymentsTotal  int `json:"payments_total"`
	PublishedPosts int `json:"published_posts"`
}
