package constants

const (
	MAX_CONTENT_LENGTH      = 16 << 20 // request body cap (bytes), 16 MiB
	APPLICATIONS_PER_PAGE   = 20       // admin list page size
	RECENT_APPLICATIONS     = 10       // dashboard "recent" panel size
	REMEMBER_DAYS           = 365      // remembered session lifetime (days)
	SESSION_COOKIE_NAME     = "ecotech_session"
	FLASH_COOKIE_NAME       = "ecotech_flash"
	SESSION_KEY_PREFIX      = "ecotech:session:"
	RESUME_TIMESTAMP_LAYOUT = "20060102_150405_" // prefix prepended to stored resume names
	COVER_LETTER_MAX_LEN    = 1000
	SKILLS_MAX_LEN          = 500
	NOTES_MAX_LEN           = 1000
	CURRENT_ADMIN_KEY       = "current_admin" // gin context key for the loaded *model.Admin
)
