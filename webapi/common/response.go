// Package common holds the response envelope, problem details, and request
// binding helpers shared by all webapi handler packages.
package common

import (
	"errors"

	"github.com/coreledger/banking/pkg/domain"
	accountdomain "github.com/coreledger/banking/pkg/domain/account"
	loandomain "github.com/coreledger/banking/pkg/domain/loan"
	"github.com/coreledger/banking/pkg/money"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. The status is
// derived from the error via ErrorToStatusCode; extras may override the
// detail (string) or the status (int).
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extras ...any) error {
	status := fiber.StatusInternalServerError
	detail := ""
	if err != nil {
		status = ErrorToStatusCode(err)
		detail = err.Error()
	}
	for _, e := range extras {
		switch v := e.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd, "application/problem+json")
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Wrong PIN and
// missing account both arrive as ErrAccountNotFound, so both return 404.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, accountdomain.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, loandomain.ErrLoanNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, accountdomain.ErrAccountAlreadyExists):
		return fiber.StatusBadRequest
	case errors.Is(err, accountdomain.ErrInsufficientBalance):
		return fiber.StatusBadRequest
	case errors.Is(err, accountdomain.ErrAccountClosed):
		return fiber.StatusBadRequest
	case errors.Is(err, accountdomain.ErrSameAccountTransfer):
		return fiber.StatusBadRequest
	case errors.Is(err, loandomain.ErrOverRepayment):
		return fiber.StatusBadRequest
	case errors.Is(err, money.ErrAmountMustBePositive):
		return fiber.StatusBadRequest
	case errors.Is(err, money.ErrAmountNotFinite):
		return fiber.StatusBadRequest
	case errors.Is(err, money.ErrAmountOverflow):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure the error response is already written
// and the returned pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

// BindQueryAndValidate is BindAndValidate for query-string parameters.
func BindQueryAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.QueryParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid query parameters", err, fiber.StatusBadRequest)
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}
