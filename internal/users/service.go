package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/logger"
	"github.com/olea-shop/olea-backend/pkg/mailer"
)

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, cursor string, limit int) ([]models.User, string, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// Service exposes the back-office account surface.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, cursor string, limit int) ([]models.User, string, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error)
}

type service struct {
	repo repository
	mail mailer.Sender
	logg *logger.Logger
}

// NewService builds the account administration service. The mail sender is
// optional; without it block notices are skipped.
func NewService(repo repository, mail mailer.Sender, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{repo: repo, mail: mail, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, cursor string, limit int) ([]models.User, string, error) {
	return s.repo.List(ctx, cursor, limit)
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"target_user_id": id.String(),
			"is_active":      active,
		})
		s.logg.Info(logCtx, "users.set_active")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !active && s.mail != nil {
		body := fmt.Sprintf("Hi %s,\n\nYour Olea account has been suspended. Contact support for details.\n", user.Username)
		if err := s.mail.Send(ctx, user.Email, "Your account has been suspended", body); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "target_user_id", id.String()), "failed to send block notice")
		}
	}
	return user, nil
}
