package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	bookingserrors "github.com/Andrics/Beyond-Earth/internal/bookings/errors"
	"github.com/Andrics/Beyond-Earth/internal/bookings/repository"
	"github.com/Andrics/Beyond-Earth/internal/bookings/validator"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	"github.com/Andrics/Beyond-Earth/pkg/events"
	"github.com/Andrics/Beyond-Earth/pkg/geo"
	"github.com/Andrics/Beyond-Earth/pkg/kafka"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Create(ctx context.Context, userID string, booking *model.Booking) error
	GetByID(ctx context.Context, userID string, id string) (*model.Booking, error)
	GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, userID string, id string, updates *model.BookingUpdate) error
	Cancel(ctx context.Context, userID string, id string) error
	NextFlightCountdown(ctx context.Context, userID string) (*model.NextFlightCountdown, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	cfg       *config.Config
	publisher EventPublisher

	randMu sync.Mutex
	rnd    *rand.Rand
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	cfg *config.Config,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		publisher: publisher,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *bookingService) Create(ctx context.Context, userID string, booking *model.Booking) error {
	if userID == "" {
		return apperrors.Unauthorized("Missing user identity")
	}

	booking.ID = ""
	booking.UserID = userID
	s.applyDefaults(booking)
	booking.SpaceshipLocation = s.randomLocation(time.Now().UTC())

	if err := s.validator.ValidateCreate(booking, time.Now()); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "user_id", userID, "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "user_id", userID, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.publishEvent(ctx, events.TypeBookingCreated, userID, events.BookingCreated{
		BookingID:  booking.ID,
		UserID:     userID,
		TripType:   booking.TripType,
		FlightDate: booking.FlightDate,
		TotalPrice: booking.TotalPrice,
		CreatedAt:  booking.CreatedAt,
	})

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", userID,
		"flight_date", booking.FlightDate,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, userID string, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	s.repairLocation(ctx, booking)
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "user_id", userID, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "user_id", userID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	for _, b := range bookings {
		s.repairLocation(ctx, b)
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, userID string, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to check booking existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	if updates.Status == config.Cancelled {
		return apperrors.InvalidInput("Bookings are cancelled via DELETE, not a status update")
	}
	if updates.Status != "" && !validTransition(existing.Status, updates.Status) {
		return apperrors.InvalidInput("Invalid status transition from " + existing.Status + " to " + updates.Status)
	}

	merged := s.mergeBookingUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "id", id, "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, userID, merged); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id, "user_id", userID)
	return nil
}

// Cancel removes the booking entirely. The record is deleted rather than
// flagged so a cancelled trip frees its slot immediately; the event stream
// keeps the audit trail.
func (s *bookingService) Cancel(ctx context.Context, userID string, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to check booking existence", err)
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.DeleteByIDAndUser(sessCtx, id, userID); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to cancel booking", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, events.TypeBookingCancelled, userID, events.BookingCancelled{
		BookingID:   id,
		UserID:      userID,
		FlightDate:  existing.FlightDate,
		CancelledAt: time.Now().UTC(),
	})

	s.cfg.Log.Info("Booking cancelled successfully", "id", id, "user_id", userID)
	return nil
}

func (s *bookingService) NextFlightCountdown(ctx context.Context, userID string) (*model.NextFlightCountdown, error) {
	now := time.Now().UTC()

	upcoming, err := s.repo.FindUpcomingByUser(ctx, userID, now)
	if err != nil {
		s.cfg.Log.Error("Failed to find upcoming bookings", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve upcoming bookings", err)
	}

	next := NextBooking(upcoming, now)

	// Both fields stay null when nothing is scheduled.
	result := &model.NextFlightCountdown{}
	if next != nil {
		flightDate := next.FlightDate
		result.NextFlightDate = &flightDate
		parts := Countdown(now, result.NextFlightDate)
		result.Countdown = &parts
	}

	return result, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.TripType == "" {
		b.TripType = config.TripMars
	}
	// New bookings always start at the beginning of the lifecycle. Client
	// supplied statuses are discarded so creation cannot skip the state
	// machine the update path enforces.
	b.Status = config.Pending
	b.PaymentStatus = config.PaymentPending
	// Every trip ships with the full main ticket.
	b.MainTicket = model.MainTicket{
		Spaceship:     true,
		Landing:       true,
		GalaxyViewing: true,
		BasicTour:     true,
	}
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.AdditionalActivities != nil {
		merged.AdditionalActivities = *updates.AdditionalActivities
	}
	if updates.TotalPrice != nil {
		merged.TotalPrice = *updates.TotalPrice
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.PaymentStatus != "" {
		merged.PaymentStatus = updates.PaymentStatus
	}
	if updates.SpaceshipLocation != nil {
		merged.SpaceshipLocation = *updates.SpaceshipLocation
	}

	return &merged
}

// validTransition enforces the forward-only booking lifecycle. Cancellation
// is excluded here because it is a delete, not a status change.
func validTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case config.Pending:
		return to == config.Confirmed
	case config.Confirmed:
		return to == config.Completed
	default:
		return false
	}
}

func (s *bookingService) randomLocation(now time.Time) model.SpaceshipLocation {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return geo.RandomLocation(s.rnd, s.cfg.AltitudeMinKm, s.cfg.AltitudeMaxKm, now)
}

// repairLocation replaces a degenerate (0, 0) tracking position on read and
// persists the fix so the record heals permanently. A failed persist only
// logs; the caller still gets the corrected location.
func (s *bookingService) repairLocation(ctx context.Context, b *model.Booking) {
	if b == nil {
		return
	}

	s.randMu.Lock()
	repaired, changed := geo.RepairLocation(s.rnd, b.SpaceshipLocation, s.cfg.AltitudeMinKm, s.cfg.AltitudeMaxKm, time.Now().UTC())
	s.randMu.Unlock()

	if !changed {
		return
	}

	b.SpaceshipLocation = repaired
	if err := s.repo.UpdateLocation(ctx, b.ID, &repaired); err != nil {
		s.cfg.Log.Warn("Failed to persist repaired spaceship location", "id", b.ID, "error", err)
	}
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, userID string, payload any) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(userID).
		WithEventType(eventType).
		WithSchemaVersion(events.SchemaVersion).
		WithSource("beyond-earth-api").
		WithValue(payload).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "event_type", eventType, "user_id", userID, "error", err)
	}
}
