package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/middleware"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const testUserID = "665f1f77bcf86cd799439011"

type mockBookingService struct {
	createFn    func(ctx context.Context, userID string, booking *model.Booking) error
	getByIDFn   func(ctx context.Context, userID string, id string) (*model.Booking, error)
	getAllFn    func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	updateFn    func(ctx context.Context, userID string, id string, updates *model.BookingUpdate) error
	cancelFn    func(ctx context.Context, userID string, id string) error
	countdownFn func(ctx context.Context, userID string) (*model.NextFlightCountdown, error)
}

func (m *mockBookingService) Create(ctx context.Context, userID string, booking *model.Booking) error {
	return m.createFn(ctx, userID, booking)
}

func (m *mockBookingService) GetByID(ctx context.Context, userID string, id string) (*model.Booking, error) {
	return m.getByIDFn(ctx, userID, id)
}

func (m *mockBookingService) GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	return m.getAllFn(ctx, userID, limit, offset)
}

func (m *mockBookingService) Update(ctx context.Context, userID string, id string, updates *model.BookingUpdate) error {
	return m.updateFn(ctx, userID, id, updates)
}

func (m *mockBookingService) Cancel(ctx context.Context, userID string, id string) error {
	return m.cancelFn(ctx, userID, id)
}

func (m *mockBookingService) NextFlightCountdown(ctx context.Context, userID string) (*model.NextFlightCountdown, error) {
	return m.countdownFn(ctx, userID)
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	h := NewBookingHandler(svc, logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}))
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func doRequest(router *httprouter.Router, method, path string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, testUserID))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateBooking(t *testing.T) {
	var gotUserID string
	svc := &mockBookingService{
		createFn: func(ctx context.Context, userID string, booking *model.Booking) error {
			gotUserID = userID
			booking.ID = "665f1f77bcf86cd799439022"
			return nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/bookings",
		`{"trip_type":"mars","flight_date":"2027-06-01T00:00:00Z","total_price":1200000}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != testUserID {
		t.Errorf("expected user ID from context, got %q", gotUserID)
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID != "665f1f77bcf86cd799439022" {
		t.Errorf("expected booking ID in response, got %q", resp.Data.ID)
	}
}

func TestCreateBookingInvalidBody(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, userID string, booking *model.Booking) error {
			t.Error("service should not be called for malformed JSON")
			return nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/bookings", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestGetBookingByID(t *testing.T) {
	svc := &mockBookingService{
		getByIDFn: func(ctx context.Context, userID string, id string) (*model.Booking, error) {
			if id != "665f1f77bcf86cd799439022" {
				t.Errorf("unexpected booking ID %q", id)
			}
			return &model.Booking{ID: id, UserID: userID, Status: "confirmed"}, nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(router, http.MethodGet, "/api/v1/bookings/id/665f1f77bcf86cd799439022", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestGetBookingByIDNotFound(t *testing.T) {
	svc := &mockBookingService{
		getByIDFn: func(ctx context.Context, userID string, id string) (*model.Booking, error) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(router, http.MethodGet, "/api/v1/bookings/id/665f1f77bcf86cd799439022", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestGetAllBookings(t *testing.T) {
	svc := &mockBookingService{
		getAllFn: func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
			if limit != 5 || offset != 10 {
				t.Errorf("expected limit=5 offset=10, got limit=%d offset=%d", limit, offset)
			}
			return []*model.Booking{{ID: "665f1f77bcf86cd799439022"}}, 42, nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(router, http.MethodGet, "/api/v1/bookings?limit=5&offset=10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		TotalCount int64 `json:"total_count"`
		Limit      int   `json:"limit"`
		Offset     int64 `json:"offset"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCount != 42 || resp.Limit != 5 || resp.Offset != 10 {
		t.Errorf("unexpected pagination envelope: %+v", resp)
	}
}

func TestUpdateBooking(t *testing.T) {
	svc := &mockBookingService{
		updateFn: func(ctx context.Context, userID string, id string, updates *model.BookingUpdate) error {
			if updates.Status != "confirmed" {
				t.Errorf("expected status confirmed, got %q", updates.Status)
			}
			return nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(router, http.MethodPatch, "/api/v1/bookings/id/665f1f77bcf86cd799439022",
		`{"status":"confirmed"}`)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
}

func TestCancelBooking(t *testing.T) {
	cancelled := false
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, userID string, id string) error {
			cancelled = true
			return nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(router, http.MethodDelete, "/api/v1/bookings/id/665f1f77bcf86cd799439022", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
	if !cancelled {
		t.Error("expected cancel to be called")
	}
}

func TestNextFlightCountdownRoute(t *testing.T) {
	flight := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := &mockBookingService{
		countdownFn: func(ctx context.Context, userID string) (*model.NextFlightCountdown, error) {
			return &model.NextFlightCountdown{
				NextFlightDate: &flight,
				Countdown:      &model.CountdownParts{Days: 10},
			}, nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(router, http.MethodGet, "/api/v1/bookings/next-flight/countdown", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Data model.NextFlightCountdown `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Countdown == nil || resp.Data.Countdown.Days != 10 {
		t.Errorf("unexpected countdown: %+v", resp.Data.Countdown)
	}
}
