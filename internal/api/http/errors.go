package http

import (
	"alpaca/internal/controllers"
	"alpaca/internal/usecasees"
	"alpaca/internal/usecasees/structs"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type errorBody struct {
	Error        string `json:"error"`
	Message      string `json:"message"`
	Field        string `json:"field,omitempty"`
	UpstreamCode int64  `json:"upstream_code,omitempty"`
	RequestID    string `json:"request_id,omitempty"`
}

// NewErrorHandler maps the error taxonomy onto HTTP statuses. Upstream
// statuses are mirrored; anything unclassified is a 500 with a generic
// message.
func NewErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := classify(err)
		body.RequestID = requestID(c)

		entry := logger.
			WithField("method", "ErrorHandler").
			WithField("request_id", body.RequestID).
			WithField("path", c.Path()).
			WithField("status", status).
			WithError(err)

		if status >= fiber.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Debug("request rejected")
		}

		return c.Status(status).JSON(body)
	}
}

func classify(err error) (int, errorBody) {
	var (
		vErr   *structs.ValidationError
		nfErr  *usecasees.NotFoundError
		cErr   *usecasees.ConflictError
		upErr  *controllers.UpstreamError
		fibErr *fiber.Error
	)

	switch {
	case errors.As(err, &vErr):
		return fiber.StatusUnprocessableEntity, errorBody{
			Error:   "validation_error",
			Message: vErr.Message,
			Field:   vErr.Field,
		}

	case errors.As(err, &nfErr):
		return fiber.StatusNotFound, errorBody{
			Error:   "not_found",
			Message: nfErr.Error(),
		}

	case errors.As(err, &cErr):
		return fiber.StatusConflict, errorBody{
			Error:   "conflict",
			Message: cErr.Error(),
		}

	case errors.As(err, &upErr):
		status := upErr.StatusCode
		if status == 0 {
			status = fiber.StatusBadGateway
		}

		return status, errorBody{
			Error:        "upstream_error",
			Message:      upErr.Message,
			UpstreamCode: upErr.Code,
		}

	case errors.As(err, &fibErr):
		return fibErr.Code, errorBody{
			Error:   "http_error",
			Message: fibErr.Message,
		}
	}

	return fiber.StatusInternalServerError, errorBody{
		Error:   "internal_error",
		Message: "internal server error",
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}

	return ""
}
