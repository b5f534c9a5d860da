package service

import (
	"context"
	"errors"
	"time"

	subscriptions "github.com/Andrics/Beyond-Earth/internal/subscriptions/service"
	userserrors "github.com/Andrics/Beyond-Earth/internal/users/errors"
	"github.com/Andrics/Beyond-Earth/internal/users/repository"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
)

// ContentItem is a catalog entry served to the frontend. The catalogs are
// compiled in; editing them is a deploy, not a database migration.
type ContentItem struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	MediaURL    string `json:"media_url,omitempty"`
}

type ContentService interface {
	PublicContent(ctx context.Context) []ContentItem
	PremiumContent(ctx context.Context, userID string) ([]ContentItem, error)
}

type contentService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewContentService(users repository.UserRepository, cfg *config.Config) ContentService {
	return &contentService{
		users: users,
		cfg:   cfg,
	}
}

var publicCatalog = []ContentItem{
	{
		Title:       "Why Mars",
		Category:    "guide",
		Description: "What makes the red planet the first stop for commercial space tourism.",
	},
	{
		Title:       "Trip Preparation Basics",
		Category:    "guide",
		Description: "Medical clearance, training schedule and packing list for your first flight.",
	},
	{
		Title:       "Mission Timeline",
		Category:    "reference",
		Description: "From booking confirmation to touchdown: the phases of a Mars journey.",
	},
}

var premiumCatalog = []ContentItem{
	{
		Title:       "Landing Site Deep Dive",
		Category:    "video",
		Description: "Extended footage and commentary from previous landings at Jezero plateau.",
		MediaURL:    "https://media.beyond-earth.example.com/premium/landing-sites",
	},
	{
		Title:       "Crew Interviews",
		Category:    "video",
		Description: "Conversations with flight crews about life in transit.",
		MediaURL:    "https://media.beyond-earth.example.com/premium/crew-interviews",
	},
	{
		Title:       "Land Owner Briefings",
		Category:    "report",
		Description: "Quarterly development reports for Martian land owners.",
		MediaURL:    "https://media.beyond-earth.example.com/premium/owner-briefings",
	},
}

func (s *contentService) PublicContent(ctx context.Context) []ContentItem {
	return publicCatalog
}

// PremiumContent gates on effective subscription validity. An expired or
// missing subscription is Forbidden, never NotFound: the caller exists, they
// just have not paid.
func (s *contentService) PremiumContent(ctx context.Context, userID string) ([]ContentItem, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	evaluated, changed := subscriptions.Evaluate(user.Subscription, time.Now().UTC())
	if changed {
		if err := s.users.UpdateSubscription(ctx, userID, &evaluated); err != nil {
			s.cfg.Log.Warn("Failed to persist corrected subscription", "user_id", userID, "error", err)
		}
	}

	if !evaluated.IsActive {
		return nil, apperrors.Forbidden("subscription required")
	}

	return premiumCatalog, nil
}
