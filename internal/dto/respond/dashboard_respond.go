package respond

import "ecotech_server/internal/model"

// DomainCount is the number of applications for one internship domain.
type DomainCount struct {
	Domain    string
	Count     int64
	Highlight bool // IT, IoT and AI get their own dashboard cards
}

// DashboardStats are the counters at the top of the admin dashboard.
type DashboardStats struct {
	Total    int64
	Pending  int64
	Reviewed int64
	Accepted int64
	Rejected int64
	IT       int64
	IoT      int64
	AI       int64
	Domains  []DomainCount
}

// DashboardRespond feeds admin/dashboard.html.
type DashboardRespond struct {
	Stats  DashboardStats
	Recent []model.InternshipApplication
}

// MonthCount groups applications by calendar month number (1-12), across all years.
type MonthCount struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// StatusCount groups applications by review status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ChartRespond is the body of GET /admin/api/applications-chart.
type ChartRespond struct {
	Monthly []MonthCount  `json:"monthly"`
	Status  []StatusCount `json:"status"`
}
