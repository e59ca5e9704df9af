package service

import (
	"ecotech_server/internal/dao/repository"
	"ecotech_server/internal/service/application"
	"ecotech_server/internal/service/auth"
	"ecotech_server/internal/service/contact"
	"ecotech_server/internal/service/content"
	"ecotech_server/internal/storage"
)

// Services bundles every service; it is the injection point for handlers.
type Services struct {
	Application ApplicationService
	Contact     ContactService
	Auth        AuthService
	Content     ContentService
}

// NewServices wires every service to the repositories and the resume store.
func NewServices(repos *repository.Repositories, resumes storage.ResumeStore) *Services {
	return &Services{
		Application: application.NewApplicationService(repos, resumes),
		Contact:     contact.NewContactService(repos),
		Auth:        auth.NewAuthService(repos),
		Content:     content.NewContentService(),
	}
}
