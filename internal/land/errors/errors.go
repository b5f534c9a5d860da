package errors

import "errors"

var (
	ErrNotFound             = errors.New("land purchase not found")
	ErrInvalidID            = errors.New("invalid land purchase ID format")
	ErrDuplicateCertificate = errors.New("certificate number already exists")
)
