package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode yields no product record.
	// Lookup callers see this for every unsuccessful lookup, whatever the cause.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when the barcode is blank after trimming
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUpstreamFailure is returned when the Open Food Facts request cannot be completed
	ErrUpstreamFailure = errors.New("Open Food Facts request failed")
)
