package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	bookingserrors "github.com/Andrics/Beyond-Earth/internal/bookings/errors"
	bookingsrepo "github.com/Andrics/Beyond-Earth/internal/bookings/repository"
	landerrors "github.com/Andrics/Beyond-Earth/internal/land/errors"
	"github.com/Andrics/Beyond-Earth/internal/land/repository"
	"github.com/Andrics/Beyond-Earth/internal/land/validator"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	"github.com/Andrics/Beyond-Earth/pkg/events"
	"github.com/Andrics/Beyond-Earth/pkg/geo"
	"github.com/Andrics/Beyond-Earth/pkg/kafka"
	"github.com/Andrics/Beyond-Earth/pkg/model"
)

// createRetries bounds duplicate-certificate retries. Each retry mints a new
// certificate number, so one retry is almost always enough.
const createRetries = 3

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type LandService interface {
	Create(ctx context.Context, userID string, input *model.LandPurchaseInput) (*model.LandPurchase, error)
	GetByID(ctx context.Context, userID string, id string) (*model.LandPurchase, error)
	GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.LandPurchase, int64, error)
}

type landService struct {
	repo      repository.LandRepository
	bookings  bookingsrepo.BookingRepository
	validator *validator.LandValidator
	cfg       *config.Config
	publisher EventPublisher

	randMu sync.Mutex
	rnd    *rand.Rand
}

func NewLandService(
	repo repository.LandRepository,
	bookings bookingsrepo.BookingRepository,
	validator *validator.LandValidator,
	cfg *config.Config,
	publisher EventPublisher,
) LandService {
	return &landService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
		publisher: publisher,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *landService) Create(ctx context.Context, userID string, input *model.LandPurchaseInput) (*model.LandPurchase, error) {
	if err := s.validator.ValidateInput(input); err != nil {
		s.cfg.Log.Warn("Land purchase validation failed", "user_id", userID, "error", err)
		return nil, apperrors.Validation("Land purchase validation failed", map[string]any{"error": err.Error()})
	}

	// The referenced booking must exist and belong to the buyer.
	if _, err := s.bookings.FindByIDAndUser(ctx, input.BookingID, userID); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", input.BookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to verify booking", err)
	}

	coords := s.resolveCoordinates(input.Coordinates)

	purchase := &model.LandPurchase{
		UserID:      userID,
		BookingID:   input.BookingID,
		LandType:    input.LandType,
		Size:        input.Size,
		Price:       input.Price,
		Coordinates: coords,
		MapLocation: fmt.Sprintf("Mars Coordinates: %.4f°N, %.4f°E", coords.Latitude, coords.Longitude),
		Status:      config.Confirmed,
	}

	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		purchase.OwnershipCertificate = s.mintCertificate(input.LandType, input.Size)
		err = s.repo.Create(ctx, purchase)
		if !errors.Is(err, landerrors.ErrDuplicateCertificate) {
			break
		}
		s.cfg.Log.Warn("Certificate number collision, regenerating", "user_id", userID, "attempt", attempt+1)
	}
	if err != nil {
		if errors.Is(err, landerrors.ErrDuplicateCertificate) {
			return nil, apperrors.Conflict("Could not allocate a unique certificate number")
		}
		s.cfg.Log.Error("Failed to create land purchase", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to create land purchase", err)
	}

	s.publishEvent(ctx, userID, events.LandPurchased{
		PurchaseID:        purchase.ID,
		UserID:            userID,
		BookingID:         purchase.BookingID,
		LandType:          purchase.LandType,
		CertificateNumber: purchase.OwnershipCertificate.CertificateNumber,
		PurchasedAt:       purchase.CreatedAt,
	})

	s.cfg.Log.Info("Land purchase created successfully",
		"id", purchase.ID,
		"user_id", userID,
		"land_type", purchase.LandType,
		"certificate", purchase.OwnershipCertificate.CertificateNumber,
	)
	return purchase, nil
}

func (s *landService) GetByID(ctx context.Context, userID string, id string) (*model.LandPurchase, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Land purchase ID cannot be empty")
	}

	purchase, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, landerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Land purchase", id)
		}
		if errors.Is(err, landerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid land purchase ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve land purchase", err)
	}

	return purchase, nil
}

func (s *landService) GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.LandPurchase, int64, error) {
	var count int64
	var purchases []*model.LandPurchase
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count land purchases", "user_id", userID, "error", errCount)
			errCount = apperrors.Internal("Failed to count land purchases", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		purchases, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list land purchases", "user_id", userID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve land purchases", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return purchases, count, nil
}

func (s *landService) resolveCoordinates(coords *model.Coordinates) model.Coordinates {
	if coords != nil {
		return *coords
	}

	s.randMu.Lock()
	defer s.randMu.Unlock()
	return geo.RandomCoordinate(s.rnd)
}

func (s *landService) mintCertificate(landType string, size float64) model.OwnershipCertificate {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return GenerateCertificate(s.cfg.CertificatePrefix, s.cfg.CertificateSuffixLen, landType, size, time.Now().UTC(), s.rnd)
}

func (s *landService) publishEvent(ctx context.Context, userID string, payload events.LandPurchased) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(userID).
		WithEventType(events.TypeLandPurchased).
		WithSchemaVersion(events.SchemaVersion).
		WithSource("beyond-earth-api").
		WithValue(payload).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish land event", "user_id", userID, "error", err)
	}
}
