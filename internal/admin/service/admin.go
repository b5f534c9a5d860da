package service

import (
	"context"
	"errors"
	"sync"

	bookingserrors "github.com/Andrics/Beyond-Earth/internal/bookings/errors"
	bookingsrepo "github.com/Andrics/Beyond-Earth/internal/bookings/repository"
	userserrors "github.com/Andrics/Beyond-Earth/internal/users/errors"
	usersrepo "github.com/Andrics/Beyond-Earth/internal/users/repository"
	usersvalidator "github.com/Andrics/Beyond-Earth/internal/users/validator"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// AdminService backs the management surface. Every method begins with a role
// check against the users store; tokens carry no role claim, so the store is
// the source of truth.
type AdminService interface {
	ListUsers(ctx context.Context, callerID string, limit int, offset int64) ([]*model.User, int64, error)
	GetUser(ctx context.Context, callerID string, id string) (*model.User, error)
	UpdateUser(ctx context.Context, callerID string, id string, update *model.UserUpdate) error
	DeleteUser(ctx context.Context, callerID string, id string) error

	ListBookings(ctx context.Context, callerID string, limit int, offset int64) ([]*model.Booking, int64, error)
	GetBooking(ctx context.Context, callerID string, id string) (*model.Booking, error)
	UpdateBookingStatus(ctx context.Context, callerID string, id string, status string) error
	DeleteBooking(ctx context.Context, callerID string, id string) error
}

type adminService struct {
	users     usersrepo.UserRepository
	bookings  bookingsrepo.BookingRepository
	validator *usersvalidator.UserValidator
	cfg       *config.Config
}

func NewAdminService(
	users usersrepo.UserRepository,
	bookings bookingsrepo.BookingRepository,
	validator *usersvalidator.UserValidator,
	cfg *config.Config,
) AdminService {
	return &adminService{
		users:     users,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *adminService) ListUsers(ctx context.Context, callerID string, limit int, offset int64) ([]*model.User, int64, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, 0, err
	}

	var count int64
	var users []*model.User
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.users.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count users", "error", errCount)
			errCount = apperrors.Internal("Failed to count users", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		users, errFind = s.users.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list users", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve users", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return users, count, nil
}

func (s *adminService) GetUser(ctx context.Context, callerID string, id string) (*model.User, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, translateUserError(err, id)
	}

	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, callerID string, id string, update *model.UserUpdate) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}

	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("User update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	// An admin stripping their own role would lock the last key in the safe.
	if id == callerID && update.Role != "" && update.Role != config.RoleAdmin {
		return apperrors.InvalidInput("Admins cannot demote themselves")
	}

	if err := s.users.Update(ctx, id, update); err != nil {
		return translateUserError(err, id)
	}

	s.cfg.Log.Info("User updated by admin", "id", id, "caller_id", callerID)
	return nil
}

// DeleteUser removes the user and all of their bookings in one transaction.
func (s *adminService) DeleteUser(ctx context.Context, callerID string, id string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}

	if id == callerID {
		return apperrors.InvalidInput("Admins cannot delete themselves")
	}

	var removedBookings int64
	err := s.users.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.users.Delete(sessCtx, id); err != nil {
			return translateUserError(err, id)
		}

		n, err := s.bookings.DeleteByUser(sessCtx, id)
		if err != nil {
			return apperrors.Internal("Failed to delete user bookings", err)
		}
		removedBookings = n
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("User deleted by admin",
		"id", id,
		"caller_id", callerID,
		"bookings_removed", removedBookings,
	)
	return nil
}

func (s *adminService) ListBookings(ctx context.Context, callerID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, 0, err
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.bookings.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.bookings.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
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

	return bookings, count, nil
}

func (s *adminService) GetBooking(ctx context.Context, callerID string, id string) (*model.Booking, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, translateBookingError(err, id)
	}

	return booking, nil
}

func (s *adminService) UpdateBookingStatus(ctx context.Context, callerID string, id string, status string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}

	if !validStatus(status) {
		return apperrors.InvalidInput("Unknown booking status: " + status)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return translateBookingError(err, id)
	}

	if !validAdminTransition(booking.Status, status) {
		return apperrors.InvalidInput("Invalid status transition from " + booking.Status + " to " + status)
	}

	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return translateBookingError(err, id)
	}

	s.cfg.Log.Info("Booking status updated by admin",
		"id", id,
		"caller_id", callerID,
		"status", status,
	)
	return nil
}

func (s *adminService) DeleteBooking(ctx context.Context, callerID string, id string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return translateBookingError(err, id)
	}

	s.cfg.Log.Info("Booking deleted by admin", "id", id, "caller_id", callerID)
	return nil
}

func (s *adminService) requireAdmin(ctx context.Context, callerID string) error {
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

func validStatus(status string) bool {
	switch status {
	case config.Pending, config.Confirmed, config.Completed, config.Cancelled:
		return true
	default:
		return false
	}
}

// validAdminTransition mirrors the customer-facing lifecycle but lets an
// admin cancel from any state.
func validAdminTransition(from, to string) bool {
	if from == to {
		return true
	}
	if to == config.Cancelled {
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

func translateUserError(err error, id string) error {
	if errors.Is(err, userserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("User", id)
	}
	if errors.Is(err, userserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid user ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("User store operation failed", err)
}

func translateBookingError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Booking store operation failed", err)
}
