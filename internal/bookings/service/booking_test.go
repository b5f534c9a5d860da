package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "github.com/Andrics/Beyond-Earth/internal/bookings/errors"
	"github.com/Andrics/Beyond-Earth/internal/bookings/validator"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	mongotx "github.com/Andrics/Beyond-Earth/pkg/db/mongo"
	"github.com/Andrics/Beyond-Earth/pkg/events"
	"github.com/Andrics/Beyond-Earth/pkg/kafka"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testUserID    = "665f1f77bcf86cd799439011"
	testBookingID = "665f1f77bcf86cd799439022"
)

type mockBookingRepository struct {
	createFn          func(ctx context.Context, booking *model.Booking) error
	findByIDAndUserFn func(ctx context.Context, id string, userID string) (*model.Booking, error)
	findByUserFn      func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	countByUserFn     func(ctx context.Context, userID string) (int64, error)
	findUpcomingFn    func(ctx context.Context, userID string, now time.Time) ([]*model.Booking, error)
	updateFn          func(ctx context.Context, id string, userID string, booking *model.Booking) (*mongo.UpdateResult, error)
	updateLocationFn  func(ctx context.Context, id string, location *model.SpaceshipLocation) error
	deleteByIDUserFn  func(ctx context.Context, id string, userID string) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	booking.ID = testBookingID
	return nil
}

func (m *mockBookingRepository) FindByIDAndUser(ctx context.Context, id string, userID string) (*model.Booking, error) {
	if m.findByIDAndUserFn != nil {
		return m.findByIDAndUserFn(ctx, id, userID)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.countByUserFn != nil {
		return m.countByUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindUpcomingByUser(ctx context.Context, userID string, now time.Time) ([]*model.Booking, error) {
	if m.findUpcomingFn != nil {
		return m.findUpcomingFn(ctx, userID, now)
	}
	return nil, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, id string, userID string, booking *model.Booking) (*mongo.UpdateResult, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, booking)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockBookingRepository) UpdateLocation(ctx context.Context, id string, location *model.SpaceshipLocation) error {
	if m.updateLocationFn != nil {
		return m.updateLocationFn(ctx, id, location)
	}
	return nil
}

func (m *mockBookingRepository) DeleteByIDAndUser(ctx context.Context, id string, userID string) error {
	if m.deleteByIDUserFn != nil {
		return m.deleteByIDUserFn(ctx, id, userID)
	}
	return nil
}

func (m *mockBookingRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockPublisher struct {
	messages []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		AltitudeMinKm: 100,
		AltitudeMaxKm: 500,
		Log:           logger.New(logger.Config{Level: logger.ERROR, Service: "test"}),
	}
}

func newTestService(repo *mockBookingRepository, pub *mockPublisher) BookingService {
	cfg := newTestConfig()
	return NewBookingService(repo, validator.NewBookingValidator(cfg.Log), cfg, pub)
}

func futureBooking() *model.Booking {
	return &model.Booking{
		TripType:   config.TripMars,
		FlightDate: time.Now().Add(30 * 24 * time.Hour),
		TotalPrice: 1200000,
	}
}

func TestCreateAppliesDefaultsAndPublishes(t *testing.T) {
	repo := &mockBookingRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	booking := futureBooking()
	if err := svc.Create(context.Background(), testUserID, booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.UserID != testUserID {
		t.Errorf("expected user ID %s, got %s", testUserID, booking.UserID)
	}
	if booking.Status != config.Pending {
		t.Errorf("expected status pending, got %s", booking.Status)
	}
	if booking.PaymentStatus != config.PaymentPending {
		t.Errorf("expected payment status pending, got %s", booking.PaymentStatus)
	}
	if !booking.MainTicket.Spaceship || !booking.MainTicket.Landing || !booking.MainTicket.GalaxyViewing || !booking.MainTicket.BasicTour {
		t.Error("expected full main ticket on creation")
	}
	if booking.SpaceshipLocation.Latitude == 0 && booking.SpaceshipLocation.Longitude == 0 {
		t.Error("expected a generated spaceship location")
	}
	if booking.SpaceshipLocation.Altitude < 100 || booking.SpaceshipLocation.Altitude > 500 {
		t.Errorf("altitude out of range: %f", booking.SpaceshipLocation.Altitude)
	}

	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.messages))
	}
	if got := pub.messages[0].GetEventType(); got != events.TypeBookingCreated {
		t.Errorf("expected event type %s, got %s", events.TypeBookingCreated, got)
	}
	if pub.messages[0].Key != testUserID {
		t.Errorf("expected message key %s, got %s", testUserID, pub.messages[0].Key)
	}
}

func TestCreateIgnoresClientSuppliedStatuses(t *testing.T) {
	var stored *model.Booking
	repo := &mockBookingRepository{
		createFn: func(ctx context.Context, booking *model.Booking) error {
			stored = booking
			return nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	booking := futureBooking()
	booking.Status = config.Completed
	booking.PaymentStatus = config.PaymentPaid

	if err := svc.Create(context.Background(), testUserID, booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected booking to be stored")
	}
	if stored.Status != config.Pending {
		t.Errorf("expected status pending, got %s", stored.Status)
	}
	if stored.PaymentStatus != config.PaymentPending {
		t.Errorf("expected payment status pending, got %s", stored.PaymentStatus)
	}
}

func TestCreateRejectsPastFlightDate(t *testing.T) {
	repo := &mockBookingRepository{}
	svc := newTestService(repo, &mockPublisher{})

	booking := futureBooking()
	booking.FlightDate = time.Now().Add(-time.Hour)

	err := svc.Create(context.Background(), testUserID, booking)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	_, err := svc.GetByID(context.Background(), testUserID, testBookingID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestGetByIDRepairsDegenerateLocation(t *testing.T) {
	persisted := false
	repo := &mockBookingRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return &model.Booking{
				ID:     testBookingID,
				UserID: userID,
				Status: config.Confirmed,
			}, nil
		},
		updateLocationFn: func(ctx context.Context, id string, location *model.SpaceshipLocation) error {
			persisted = true
			return nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	booking, err := svc.GetByID(context.Background(), testUserID, testBookingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.SpaceshipLocation.Latitude == 0 && booking.SpaceshipLocation.Longitude == 0 {
		t.Error("expected degenerate location to be repaired")
	}
	if !persisted {
		t.Error("expected repaired location to be persisted")
	}
}

func TestGetByIDKeepsValidLocation(t *testing.T) {
	loc := model.SpaceshipLocation{Latitude: 10, Longitude: 20, Altitude: 300}
	repo := &mockBookingRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return &model.Booking{ID: testBookingID, UserID: userID, SpaceshipLocation: loc}, nil
		},
		updateLocationFn: func(ctx context.Context, id string, location *model.SpaceshipLocation) error {
			t.Error("valid location should not be persisted again")
			return nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	booking, err := svc.GetByID(context.Background(), testUserID, testBookingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.SpaceshipLocation != loc {
		t.Errorf("expected location unchanged, got %+v", booking.SpaceshipLocation)
	}
}

func TestUpdateRejectsCancelledStatus(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return existingBooking(config.Pending), nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	err := svc.Update(context.Background(), testUserID, testBookingID, &model.BookingUpdate{Status: config.Cancelled})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestUpdateRejectsBackwardTransition(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return existingBooking(config.Completed), nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	err := svc.Update(context.Background(), testUserID, testBookingID, &model.BookingUpdate{Status: config.Pending})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestUpdateMergesActivities(t *testing.T) {
	var updated *model.Booking
	repo := &mockBookingRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return existingBooking(config.Pending), nil
		},
		updateFn: func(ctx context.Context, id string, userID string, booking *model.Booking) (*mongo.UpdateResult, error) {
			updated = booking
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	activities := []model.ActivityBooking{
		{ActivityType: "rover-ride", Booked: true, Price: 5000},
	}
	err := svc.Update(context.Background(), testUserID, testBookingID, &model.BookingUpdate{
		AdditionalActivities: &activities,
		Status:               config.Confirmed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("expected repository update to be called")
	}
	if len(updated.AdditionalActivities) != 1 || updated.AdditionalActivities[0].ActivityType != "rover-ride" {
		t.Errorf("expected merged activities, got %+v", updated.AdditionalActivities)
	}
	if updated.Status != config.Confirmed {
		t.Errorf("expected status confirmed, got %s", updated.Status)
	}
	// Untouched fields survive the merge.
	if !updated.FlightDate.Equal(existingBooking(config.Pending).FlightDate) {
		t.Error("flight date must not change on update")
	}
}

func TestCancelDeletesAndPublishes(t *testing.T) {
	deleted := false
	repo := &mockBookingRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return existingBooking(config.Confirmed), nil
		},
		deleteByIDUserFn: func(ctx context.Context, id string, userID string) error {
			deleted = true
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	if err := svc.Cancel(context.Background(), testUserID, testBookingID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected booking to be deleted")
	}
	if len(pub.messages) != 1 || pub.messages[0].GetEventType() != events.TypeBookingCancelled {
		t.Errorf("expected a booking.cancelled event, got %+v", pub.messages)
	}
}

func TestCancelForeignBookingIsNotFound(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	err := svc.Cancel(context.Background(), testUserID, testBookingID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestNextFlightCountdownNoBookings(t *testing.T) {
	repo := &mockBookingRepository{}
	svc := newTestService(repo, &mockPublisher{})

	result, err := svc.NextFlightCountdown(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NextFlightDate != nil {
		t.Errorf("expected nil next flight date, got %v", result.NextFlightDate)
	}
	if result.Countdown != nil {
		t.Errorf("expected nil countdown, got %+v", result.Countdown)
	}
}

func TestNextFlightCountdownPicksEarliest(t *testing.T) {
	flight := time.Now().UTC().Add(48 * time.Hour)
	repo := &mockBookingRepository{
		findUpcomingFn: func(ctx context.Context, userID string, now time.Time) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "b", FlightDate: flight.Add(24 * time.Hour), Status: config.Pending},
				{ID: "a", FlightDate: flight, Status: config.Confirmed},
			}, nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	result, err := svc.NextFlightCountdown(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NextFlightDate == nil || !result.NextFlightDate.Equal(flight) {
		t.Errorf("expected next flight %v, got %v", flight, result.NextFlightDate)
	}
	if result.Countdown.Days < 1 || result.Countdown.Days > 2 {
		t.Errorf("unexpected countdown days: %d", result.Countdown.Days)
	}
}

func existingBooking(status string) *model.Booking {
	return &model.Booking{
		ID:         testBookingID,
		UserID:     testUserID,
		TripType:   config.TripMars,
		FlightDate: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		TotalPrice: 1200000,
		Status:     status,
		PaymentStatus: config.PaymentPending,
		SpaceshipLocation: model.SpaceshipLocation{
			Latitude: 12, Longitude: 34, Altitude: 250,
		},
	}
}
