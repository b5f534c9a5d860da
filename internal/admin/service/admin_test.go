package service

import (
	"context"
	"io"
	"testing"
	"time"

	bookingserrors "github.com/Andrics/Beyond-Earth/internal/bookings/errors"
	userserrors "github.com/Andrics/Beyond-Earth/internal/users/errors"
	usersvalidator "github.com/Andrics/Beyond-Earth/internal/users/validator"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	mongotx "github.com/Andrics/Beyond-Earth/pkg/db/mongo"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	adminID   = "665f1f77bcf86cd799439011"
	memberID  = "665f1f77bcf86cd799439022"
	bookingID = "665f1f77bcf86cd799439033"
)

type mockUserRepository struct {
	findByIDFn func(ctx context.Context, id string) (*model.User, error)
	findAllFn  func(ctx context.Context, limit int, offset int64) ([]*model.User, error)
	countFn    func(ctx context.Context) (int64, error)
	updateFn   func(ctx context.Context, id string, update *model.UserUpdate) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	if id == adminID {
		return &model.User{ID: id, Role: config.RoleAdmin}, nil
	}
	return &model.User{ID: id, Role: config.RoleUser}, nil
}

func (m *mockUserRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id string, update *model.UserUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return nil
}

func (m *mockUserRepository) UpdateSubscription(ctx context.Context, id string, sub *model.Subscription) error {
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockBookingRepository struct {
	findByIDFn     func(ctx context.Context, id string) (*model.Booking, error)
	findAllFn      func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countFn        func(ctx context.Context) (int64, error)
	updateStatusFn func(ctx context.Context, id string, status string) error
	deleteFn       func(ctx context.Context, id string) error
	deleteByUserFn func(ctx context.Context, userID string) (int64, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) FindByIDAndUser(ctx context.Context, id string, userID string) (*model.Booking, error) {
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) FindUpcomingByUser(ctx context.Context, userID string, now time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, id string, userID string, booking *model.Booking) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockBookingRepository) UpdateLocation(ctx context.Context, id string, location *model.SpaceshipLocation) error {
	return nil
}

func (m *mockBookingRepository) DeleteByIDAndUser(ctx context.Context, id string, userID string) error {
	return nil
}

func (m *mockBookingRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(users *mockUserRepository, bookings *mockBookingRepository) AdminService {
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	cfg := &config.Config{Log: log}
	return NewAdminService(users, bookings, usersvalidator.NewUserValidator(log), cfg)
}

func TestNonAdminForbidden(t *testing.T) {
	svc := newTestService(&mockUserRepository{}, &mockBookingRepository{})

	_, _, err := svc.ListUsers(context.Background(), memberID, 10, 0)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected forbidden error, got %v", err)
	}
}

func TestUnknownCallerForbidden(t *testing.T) {
	users := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
	}
	svc := newTestService(users, &mockBookingRepository{})

	_, err := svc.GetBooking(context.Background(), adminID, bookingID)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected forbidden error, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	users := &mockUserRepository{
		findAllFn: func(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
			return []*model.User{{ID: memberID, Role: config.RoleUser}}, nil
		},
		countFn: func(ctx context.Context) (int64, error) {
			return 5, nil
		},
	}
	svc := newTestService(users, &mockBookingRepository{})

	list, total, err := svc.ListUsers(context.Background(), adminID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(list) != 1 {
		t.Errorf("expected total 5 and one user, got total=%d len=%d", total, len(list))
	}
}

func TestUpdateUserSelfDemotionRejected(t *testing.T) {
	svc := newTestService(&mockUserRepository{}, &mockBookingRepository{})

	err := svc.UpdateUser(context.Background(), adminID, adminID, &model.UserUpdate{Role: config.RoleUser})
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestUpdateUserAllowsSelfRename(t *testing.T) {
	updated := false
	users := &mockUserRepository{
		updateFn: func(ctx context.Context, id string, update *model.UserUpdate) error {
			updated = true
			return nil
		},
	}
	svc := newTestService(users, &mockBookingRepository{})

	if err := svc.UpdateUser(context.Background(), adminID, adminID, &model.UserUpdate{Name: "New Name"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected user update to be applied")
	}
}

func TestDeleteUserSelfRejected(t *testing.T) {
	svc := newTestService(&mockUserRepository{}, &mockBookingRepository{})

	err := svc.DeleteUser(context.Background(), adminID, adminID)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestDeleteUserCascadesBookings(t *testing.T) {
	userDeleted := false
	users := &mockUserRepository{
		deleteFn: func(ctx context.Context, id string) error {
			if id != memberID {
				t.Errorf("unexpected delete target %q", id)
			}
			userDeleted = true
			return nil
		},
	}
	var cascadedUser string
	bookings := &mockBookingRepository{
		deleteByUserFn: func(ctx context.Context, userID string) (int64, error) {
			cascadedUser = userID
			return 2, nil
		},
	}
	svc := newTestService(users, bookings)

	if err := svc.DeleteUser(context.Background(), adminID, memberID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !userDeleted {
		t.Error("expected user to be deleted")
	}
	if cascadedUser != memberID {
		t.Errorf("expected bookings cascade for %q, got %q", memberID, cascadedUser)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		wantCode string
	}{
		{name: "pending to confirmed", current: config.Pending, next: config.Confirmed, wantCode: ""},
		{name: "confirmed to completed", current: config.Confirmed, next: config.Completed, wantCode: ""},
		{name: "admin may cancel from any state", current: config.Completed, next: config.Cancelled, wantCode: ""},
		{name: "backward transition rejected", current: config.Completed, next: config.Pending, wantCode: apperrors.CodeInvalidInput},
		{name: "skipping a step rejected", current: config.Pending, next: config.Completed, wantCode: apperrors.CodeInvalidInput},
		{name: "unknown status rejected", current: config.Pending, next: "boarding", wantCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingRepository{
				findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
					return &model.Booking{ID: id, Status: tt.current}, nil
				},
			}
			svc := newTestService(&mockUserRepository{}, bookings)

			err := svc.UpdateBookingStatus(context.Background(), adminID, bookingID, tt.next)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestDeleteBookingNotFound(t *testing.T) {
	bookings := &mockBookingRepository{
		deleteFn: func(ctx context.Context, id string) error {
			return bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockUserRepository{}, bookings)

	err := svc.DeleteBooking(context.Background(), adminID, bookingID)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}
