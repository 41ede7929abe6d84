package domain

import "errors"

// Validation failures raised by entity constructors and normalizers.
var (
	ErrEmptyID          = errors.New("id cannot be empty")
	ErrMissingTitle     = errors.New("title is required")
	ErrMissingDesc      = errors.New("description is required")
	ErrMissingPrice     = errors.New("price is required")
	ErrMissingName      = errors.New("name is required")
	ErrInvalidType      = errors.New("product type must be timeline or development")
	ErrInvalidMediaType = errors.New("media type must be image or video")
)
