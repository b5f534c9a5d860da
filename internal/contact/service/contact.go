package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Andrics/Beyond-Earth/internal/contact/repository"
	"github.com/Andrics/Beyond-Earth/internal/contact/validator"
	userserrors "github.com/Andrics/Beyond-Earth/internal/users/errors"
	usersrepo "github.com/Andrics/Beyond-Earth/internal/users/repository"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	"github.com/Andrics/Beyond-Earth/pkg/model"
	"github.com/Andrics/Beyond-Earth/pkg/sanitizer"

	"github.com/google/uuid"
)

type ContactService interface {
	Submit(ctx context.Context, message *model.ContactMessage) error
	List(ctx context.Context, callerID string, limit int, offset int64) ([]*model.ContactMessage, int64, error)
}

type contactService struct {
	repo      repository.ContactRepository
	users     usersrepo.UserRepository
	validator *validator.ContactValidator
	cfg       *config.Config
}

func NewContactService(
	repo repository.ContactRepository,
	users usersrepo.UserRepository,
	validator *validator.ContactValidator,
	cfg *config.Config,
) ContactService {
	return &contactService{
		repo:      repo,
		users:     users,
		validator: validator,
		cfg:       cfg,
	}
}

// Submit accepts a form from anyone, authenticated or not. Input is
// sanitized before validation so surrounding whitespace never fails the
// length rules.
func (s *contactService) Submit(ctx context.Context, message *model.ContactMessage) error {
	message.ID = ""
	message.Name = sanitizer.NormalizeName(message.Name)
	message.Email = sanitizer.NormalizeEmail(message.Email)
	message.Subject = sanitizer.NormalizeSubject(message.Subject)
	message.Message = sanitizer.TrimAndNormalize(message.Message)
	message.Reference = uuid.New().String()

	if err := s.validator.Validate(message); err != nil {
		s.cfg.Log.Warn("Contact message validation failed", "error", err)
		return apperrors.Validation("Contact message validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, message); err != nil {
		s.cfg.Log.Error("Failed to store contact message", "reference", message.Reference, "error", err)
		return apperrors.Internal("Failed to store contact message", err)
	}

	s.cfg.Log.Info("Contact message received", "reference", message.Reference, "subject", message.Subject)
	return nil
}

func (s *contactService) List(ctx context.Context, callerID string, limit int, offset int64) ([]*model.ContactMessage, int64, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, 0, err
	}

	var count int64
	var messages []*model.ContactMessage
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count contact messages", "error", errCount)
			errCount = apperrors.Internal("Failed to count contact messages", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		messages, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list contact messages", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve contact messages", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return messages, count, nil
}

func (s *contactService) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return apperrors.Forbidden("Admin access required")
		}
		return apperrors.Internal("Failed to verify caller", err)
	}

	if caller.Role != config.RoleAdmin {
		return apperrors.Forbidden("Admin access required")
	}

	return nil
}
