package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	bookingserrors "github.com/Andrics/Beyond-Earth/internal/bookings/errors"
	landerrors "github.com/Andrics/Beyond-Earth/internal/land/errors"
	"github.com/Andrics/Beyond-Earth/internal/land/validator"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	mongotx "github.com/Andrics/Beyond-Earth/pkg/db/mongo"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
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

type mockLandRepository struct {
	createFn          func(ctx context.Context, purchase *model.LandPurchase) error
	findByIDAndUserFn func(ctx context.Context, id string, userID string) (*model.LandPurchase, error)
	findByUserFn      func(ctx context.Context, userID string, limit int, offset int64) ([]*model.LandPurchase, error)
	countByUserFn     func(ctx context.Context, userID string) (int64, error)
}

func (m *mockLandRepository) Create(ctx context.Context, purchase *model.LandPurchase) error {
	if m.createFn != nil {
		return m.createFn(ctx, purchase)
	}
	purchase.ID = "665f1f77bcf86cd799439033"
	purchase.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockLandRepository) FindByIDAndUser(ctx context.Context, id string, userID string) (*model.LandPurchase, error) {
	if m.findByIDAndUserFn != nil {
		return m.findByIDAndUserFn(ctx, id, userID)
	}
	return nil, landerrors.ErrNotFound
}

func (m *mockLandRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.LandPurchase, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockLandRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.countByUserFn != nil {
		return m.countByUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockLandRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

// mockBookingLookup satisfies the bookings repository; only FindByIDAndUser
// matters to the land service.
type mockBookingLookup struct {
	findByIDAndUserFn func(ctx context.Context, id string, userID string) (*model.Booking, error)
}

func (m *mockBookingLookup) Create(ctx context.Context, booking *model.Booking) error { return nil }

func (m *mockBookingLookup) FindByIDAndUser(ctx context.Context, id string, userID string) (*model.Booking, error) {
	if m.findByIDAndUserFn != nil {
		return m.findByIDAndUserFn(ctx, id, userID)
	}
	return &model.Booking{ID: id, UserID: userID}, nil
}

func (m *mockBookingLookup) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingLookup) CountByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingLookup) FindUpcomingByUser(ctx context.Context, userID string, now time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingLookup) Update(ctx context.Context, id string, userID string, booking *model.Booking) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockBookingLookup) UpdateLocation(ctx context.Context, id string, location *model.SpaceshipLocation) error {
	return nil
}

func (m *mockBookingLookup) DeleteByIDAndUser(ctx context.Context, id string, userID string) error {
	return nil
}

func (m *mockBookingLookup) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingLookup) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingLookup) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingLookup) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockBookingLookup) UpdateStatus(ctx context.Context, id string, status string) error {
	return nil
}

func (m *mockBookingLookup) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingLookup) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockPublisher struct {
	messages []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func newTestService(repo *mockLandRepository, bookings *mockBookingLookup, pub *mockPublisher) LandService {
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	cfg := &config.Config{
		CertificatePrefix:    "BE-LAND",
		CertificateSuffixLen: 9,
		Log:                  log,
	}
	return NewLandService(repo, bookings, validator.NewLandValidator(log), cfg, pub)
}

func validInput() *model.LandPurchaseInput {
	return &model.LandPurchaseInput{
		BookingID: testBookingID,
		LandType:  config.LandResidential,
		Size:      2.5,
		Price:     50000,
	}
}

func TestCreateLandPurchase(t *testing.T) {
	repo := &mockLandRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, &mockBookingLookup{}, pub)

	purchase, err := svc.Create(context.Background(), testUserID, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if purchase.UserID != testUserID || purchase.BookingID != testBookingID {
		t.Errorf("unexpected ownership fields: %+v", purchase)
	}
	if purchase.Status != config.Confirmed {
		t.Errorf("expected status confirmed, got %s", purchase.Status)
	}
	if !strings.HasPrefix(purchase.OwnershipCertificate.CertificateNumber, "BE-LAND-") {
		t.Errorf("unexpected certificate number: %s", purchase.OwnershipCertificate.CertificateNumber)
	}
	if !strings.HasPrefix(purchase.MapLocation, "Mars Coordinates:") {
		t.Errorf("unexpected map location: %s", purchase.MapLocation)
	}
	if purchase.Coordinates.Latitude < -90 || purchase.Coordinates.Latitude > 90 {
		t.Errorf("generated latitude out of range: %f", purchase.Coordinates.Latitude)
	}

	if len(pub.messages) != 1 || pub.messages[0].GetEventType() != events.TypeLandPurchased {
		t.Errorf("expected a land.purchased event, got %+v", pub.messages)
	}
}

func TestCreateUsesSuppliedCoordinates(t *testing.T) {
	svc := newTestService(&mockLandRepository{}, &mockBookingLookup{}, &mockPublisher{})

	input := validInput()
	input.Coordinates = &model.Coordinates{Latitude: 12.34, Longitude: 56.78}

	purchase, err := svc.Create(context.Background(), testUserID, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purchase.Coordinates != *input.Coordinates {
		t.Errorf("expected supplied coordinates, got %+v", purchase.Coordinates)
	}
	if !strings.Contains(purchase.MapLocation, "12.3400") || !strings.Contains(purchase.MapLocation, "56.7800") {
		t.Errorf("map location should embed coordinates, got %s", purchase.MapLocation)
	}
}

func TestCreateRequiresOwnedBooking(t *testing.T) {
	bookings := &mockBookingLookup{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockLandRepository{}, bookings, &mockPublisher{})

	_, err := svc.Create(context.Background(), testUserID, validInput())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(&mockLandRepository{}, &mockBookingLookup{}, &mockPublisher{})

	input := validInput()
	input.LandType = "oceanfront"

	_, err := svc.Create(context.Background(), testUserID, input)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateRetriesOnDuplicateCertificate(t *testing.T) {
	attempts := 0
	seen := make(map[string]bool)
	repo := &mockLandRepository{
		createFn: func(ctx context.Context, purchase *model.LandPurchase) error {
			attempts++
			seen[purchase.OwnershipCertificate.CertificateNumber] = true
			if attempts == 1 {
				return landerrors.ErrDuplicateCertificate
			}
			purchase.ID = "665f1f77bcf86cd799439033"
			return nil
		},
	}
	svc := newTestService(repo, &mockBookingLookup{}, &mockPublisher{})

	if _, err := svc.Create(context.Background(), testUserID, validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if len(seen) != 2 {
		t.Error("expected a fresh certificate number per attempt")
	}
}

func TestGetByIDForeignPurchaseIsNotFound(t *testing.T) {
	repo := &mockLandRepository{
		findByIDAndUserFn: func(ctx context.Context, id string, userID string) (*model.LandPurchase, error) {
			return nil, landerrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockBookingLookup{}, &mockPublisher{})

	_, err := svc.GetByID(context.Background(), testUserID, "665f1f77bcf86cd799439033")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestGetAllReturnsCountAndPage(t *testing.T) {
	repo := &mockLandRepository{
		findByUserFn: func(ctx context.Context, userID string, limit int, offset int64) ([]*model.LandPurchase, error) {
			return []*model.LandPurchase{{ID: "665f1f77bcf86cd799439033"}}, nil
		},
		countByUserFn: func(ctx context.Context, userID string) (int64, error) {
			return 7, nil
		},
	}
	svc := newTestService(repo, &mockBookingLookup{}, &mockPublisher{})

	purchases, total, err := svc.GetAll(context.Background(), testUserID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 || len(purchases) != 1 {
		t.Errorf("expected total 7 and one purchase, got total=%d len=%d", total, len(purchases))
	}
}
