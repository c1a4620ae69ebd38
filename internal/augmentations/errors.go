package augmentations

import (
	"errors"
	"net/http"
)

// Domain errors for catalog operations.
var (
	ErrNotFound    = errors.New("augmentation not found")
	ErrDuplicate   = errors.New("augmentation already exists")
	ErrInvalidBody = errors.New("invalid request body")
	ErrNotCSV      = errors.New("uploaded file must be a .csv file")
	ErrEmptyExport = errors.New("no augmentations match the export query")
)

// MapHTTPStatus maps catalog domain errors to HTTP status codes. Field
// validation failures map to 422; anything unrecognized is a server fault.
func MapHTTPStatus(err error) int {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusUnprocessableEntity
	}

	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidBody), errors.Is(err, ErrNotCSV):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmptyExport):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
