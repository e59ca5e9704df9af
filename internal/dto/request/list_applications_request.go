package request

import "strconv"

// ListApplicationsRequest carries the query string of /admin/applications.
// "all" or empty means no filter; Page is kept raw so bad input falls back to 1 instead of failing.
type ListApplicationsRequest struct {
	Page   string `form:"page"`
	Status string `form:"status"`
	Type   string `form:"type"`
	Search string `form:"search"`
}

// PageNumber parses Page; anything that is not a positive integer is page 1.
func (r ListApplicationsRequest) PageNumber() int {
	n, err := strconv.Atoi(r.Page)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// StatusFilter is the status predicate, "" for none.
func (r ListApplicationsRequest) StatusFilter() string {
	if r.Status == "all" {
		return ""
	}
	return r.Status
}

// TypeFilter is the internship domain predicate, "" for none.
func (r ListApplicationsRequest) TypeFilter() string {
	if r.Type == "all" {
		return ""
	}
	return r.Type
}
