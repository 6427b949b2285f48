// FILE: internal/pkg/serverutils/response.go
package serverutils

import (
	"errors"

	"teletherapy-be/internal/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func SuccessResponse(message string, data interface{}) ApiResponse {
	return ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string, errs interface{}) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

// ValidateRequest runs struct tag validation and converts failures into an
// invalid_input error carrying per-field messages.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return &ValidationError{Fields: fields}
		}
		return apperror.Wrap(apperror.KindInvalidInput, "invalid request", err)
	}
	return nil
}

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func statusFromKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindInvalidInput:
		return fiber.StatusBadRequest
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindPolicyViolation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware converts errors returned by handlers into a uniform
// JSON envelope. Internal errors never leak their cause to the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var verr *ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse("validation failed", verr.Fields))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).
				JSON(ErrorResponse(fiberErr.Message, nil))
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return ctx.Status(statusFromKind(appErr.Kind)).
				JSON(ErrorResponse(appErr.Message, nil))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse("internal server error", nil))
	}
}
