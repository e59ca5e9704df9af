package request

// LoginRequest is the admin login form.
// Used by:
//   - handler/auth_handler.go: AuthHandler.Login
//   - service/auth: Login
type LoginRequest struct {
	Username string `form:"username" binding:"required,min=3,max=80"`
	Password string `form:"password" binding:"required"`
}
