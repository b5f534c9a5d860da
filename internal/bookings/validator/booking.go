package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if err := v.validateActivities(booking.AdditionalActivities); err != nil {
		return err
	}

	return nil
}

// ValidateCreate additionally requires the flight date to be in the future.
// Existing bookings legitimately carry past flight dates, so the check only
// applies at creation time.
func (v *BookingValidator) ValidateCreate(booking *model.Booking, now time.Time) error {
	if err := v.Validate(booking); err != nil {
		return err
	}

	if !booking.FlightDate.After(now) {
		return ValidationErrors{
			ValidationError{
				Field:   "FlightDate",
				Message: "flight_date must be in the future",
			},
		}
	}

	return nil
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.AdditionalActivities != nil {
		if err := v.validateActivities(*update.AdditionalActivities); err != nil {
			return err
		}
	}

	return nil
}

func (v *BookingValidator) validateActivities(activities []model.ActivityBooking) error {
	seen := make(map[string]bool, len(activities))
	for _, a := range activities {
		if seen[a.ActivityType] {
			return ValidationErrors{
				ValidationError{
					Field:   "AdditionalActivities",
					Message: fmt.Sprintf("duplicate activity type: %s", a.ActivityType),
				},
			}
		}
		seen[a.ActivityType] = true
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "latitude":
			message = fmt.Sprintf("%s must be between -90 and 90", err.Field())
		case "longitude":
			message = fmt.Sprintf("%s must be between -180 and 180", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
