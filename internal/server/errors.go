// Package server provides the HTTP REST API for interview question generation.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/interview-prep/internal/db"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrGeneration indicates the question generator failed
type ErrGeneration struct {
	Cause error
}

func (e *ErrGeneration) Error() string {
	return fmt.Sprintf("question generation failed: %v", e.Cause)
}

func (e *ErrGeneration) Unwrap() error {
	return e.Cause
}

// ErrExtraction indicates text extraction from an upload failed
type ErrExtraction struct {
	Cause error
}

func (e *ErrExtraction) Error() string {
	return fmt.Sprintf("text extraction failed: %v", e.Cause)
}

func (e *ErrExtraction) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if errors.Is(err, db.ErrFavoriteNotFound) {
		return http.StatusNotFound
	}

	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var extractionErr *ErrExtraction
	if errors.As(err, &extractionErr) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}
