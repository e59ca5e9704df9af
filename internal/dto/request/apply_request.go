package request

import "mime/multipart"

// ApplyRequest is the internship application form.
// Used by:
//   - handler/apply_handler.go: ApplyHandler.Submit
//   - service/application: Submit
type ApplyRequest struct {
	Name            string                `form:"name" binding:"required,min=2,max=100"`
	Email           string                `form:"email" binding:"required,email"`
	Phone           string                `form:"phone" binding:"omitempty,max=20"`
	College         string                `form:"college" binding:"required,min=2,max=200"`
	Course          string                `form:"course" binding:"required,min=2,max=100"`
	YearOfStudy     string                `form:"year_of_study" binding:"required,year_of_study"`
	InternshipType  string                `form:"internship_type" binding:"required,internship_domain"`
	CoverLetter     string                `form:"cover_letter" binding:"omitempty,max=1000"`
	Skills          string                `form:"skills" binding:"omitempty,max=500"`
	GithubProfile   string                `form:"github_profile" binding:"omitempty,url"`
	LinkedinProfile string                `form:"linkedin_profile" binding:"omitempty,url"`
	Resume          *multipart.FileHeader `form:"resume" binding:"required"`
}
