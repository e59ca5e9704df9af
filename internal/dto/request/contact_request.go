package request

// ContactRequest is the public contact form. Fields are stored as submitted, without validation.
type ContactRequest struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Phone     string `form:"phone"`
	Service   string `form:"service"`
	Message   string `form:"message"`
}
