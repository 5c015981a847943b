// Package server provides the HTTP REST API for the CV anonymizer.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrJobNotFound indicates the requested conversion job does not exist
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrJobNotReady indicates the output is not available yet
type ErrJobNotReady struct {
	JobID  uuid.UUID
	Status string
}

func (e *ErrJobNotReady) Error() string {
	return fmt.Sprintf("job %s is %s, output not available", e.JobID, e.Status)
}

// ErrBusy indicates the worker is already processing a document
type ErrBusy struct{}

func (e *ErrBusy) Error() string {
	return "a document is already being processed, try again later"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrJobNotFound:
		return http.StatusNotFound
	case *ErrJobNotReady:
		return http.StatusConflict
	case *ErrBusy:
		return http.StatusTooManyRequests
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
