package service

import (
	"context"
	"errors"

	activitieserrors "github.com/Andrics/Beyond-Earth/internal/activities/errors"
	"github.com/Andrics/Beyond-Earth/internal/activities/repository"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	"github.com/Andrics/Beyond-Earth/pkg/model"
)

type ActivityService interface {
	GetAvailable(ctx context.Context) ([]*model.Activity, error)
	GetByType(ctx context.Context, activityType string) (*model.Activity, error)
}

type activityService struct {
	repo repository.ActivityRepository
	cfg  *config.Config
}

func NewActivityService(repo repository.ActivityRepository, cfg *config.Config) ActivityService {
	return &activityService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *activityService) GetAvailable(ctx context.Context) ([]*model.Activity, error) {
	activities, err := s.repo.FindAvailable(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list activities", "error", err)
		return nil, apperrors.Internal("Failed to retrieve activities", err)
	}

	return activities, nil
}

func (s *activityService) GetByType(ctx context.Context, activityType string) (*model.Activity, error) {
	if activityType == "" {
		return nil, apperrors.InvalidInput("Activity type cannot be empty")
	}

	activity, err := s.repo.FindAvailableByType(ctx, activityType)
	if err != nil {
		if errors.Is(err, activitieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Activity", activityType)
		}
		s.cfg.Log.Error("Failed to find activity", "type", activityType, "error", err)
		return nil, apperrors.Internal("Failed to retrieve activity", err)
	}

	return activity, nil
}
