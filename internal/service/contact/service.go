// Package contact stores messages from the public contact form.
package contact

import (
	"context"

	"ecotech_server/internal/dao/repository"
	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/model"

	"go.uber.org/zap"
)

// contactService is the ContactService implementation.
type contactService struct {
	repos *repository.Repositories
}

// NewContactService injects the repositories.
func NewContactService(repos *repository.Repositories) *contactService {
	return &contactService{repos: repos}
}

// Submit inserts the message exactly as submitted.
func (s *contactService) Submit(ctx context.Context, req request.ContactRequest) error {
	msg := &model.ContactMessage{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Message:   req.Message,
	}
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		return tx.Contact.Create(ctx, msg)
	})
	if err != nil {
		zap.L().Error("save contact message", zap.String("email", req.Email), zap.Error(err))
		return err
	}
	zap.L().Info("contact message received", zap.Uint("id", msg.ID), zap.String("service", msg.Service))
	return nil
}
