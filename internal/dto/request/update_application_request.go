package request

// UpdateApplicationRequest is the status form on the admin detail view.
type UpdateApplicationRequest struct {
	Status string `form:"status" binding:"required,application_status"`
	Notes  string `form:"notes" binding:"omitempty,max=1000"`
}
