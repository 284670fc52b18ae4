package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"scriptum/internal/http/middleware"
	"scriptum/internal/logger"
	"scriptum/internal/repository"
	"scriptum/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response. message must be safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// writeServiceError translates a service error into an HTTP error response.
// entity names the resource in client messages ("category", "tag", ...).
func writeServiceError(c *fiber.Ctx, err error, entity string) error {
	switch {
	case errors.Is(err, service.ErrIDExists):
		return writeError(c, fiber.StatusBadRequest, "ID_EXISTS", "a new "+entity+" cannot already have an id")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "ID_NULL", "invalid id")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", entity+" not found")
	case errors.Is(err, service.ErrNoBlob):
		return writeError(c, fiber.StatusNotFound, "NO_BLOB", "document has no blob")
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrLinkRequired),
		errors.Is(err, service.ErrReaderNil),
		errors.Is(err, service.ErrCodeRequired):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, repository.ErrInvalidReference):
		return writeError(c, fiber.StatusBadRequest, "INVALID_REFERENCE", "referenced category or tag does not exist")
	case errors.Is(err, service.ErrNotAuthenticated):
		return writeError(c, fiber.StatusUnauthorized, "NOT_AUTHENTICATED", "sign in with google first")
	default:
		logger.FromContext(c.UserContext()).Error("request failed", zap.String("entity", entity), zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			logger.FromContext(c.UserContext()).Error("unhandled error", zap.Error(err))
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
