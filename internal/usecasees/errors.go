package usecasees

import (
	"alpaca/internal/controllers"
	"errors"
	"fmt"
)

// NotFoundError is returned when the brokerage has no such resource.
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found: %s", e.Resource, e.ID, e.Message)
}

// ConflictError is returned when the brokerage refuses a state transition,
// e.g. canceling an order that is already filled.
type ConflictError struct {
	Resource string
	ID       string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q conflict: %s", e.Resource, e.ID, e.Message)
}

func upstreamStatus(err error, statuses ...int) (*controllers.UpstreamError, bool) {
	var upErr *controllers.UpstreamError
	if !errors.As(err, &upErr) {
		return nil, false
	}

	for _, status := range statuses {
		if upErr.StatusCode == status {
			return upErr, true
		}
	}

	return nil, false
}

func notFoundOn(err error, resource, id string, statuses ...int) error {
	if upErr, ok := upstreamStatus(err, statuses...); ok {
		return &NotFoundError{Resource: resource, ID: id, Message: upErr.Message}
	}

	return err
}

func conflictOn(err error, resource, id string, statuses ...int) error {
	if upErr, ok := upstreamStatus(err, statuses...); ok {
		return &ConflictError{Resource: resource, ID: id, Message: upErr.Message}
	}

	return err
}
