package serverutils

import "github.com/gofiber/fiber/v2"

// ApiError carries an HTTP status through the service layer so controllers can
// `return err` and let ErrorHandlerMiddleware translate it.
type ApiError struct {
	Code    int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(code int, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}

func NewBadRequest(message string) *ApiError {
	return NewApiError(fiber.StatusBadRequest, message)
}

func NewUnauthorized(message string) *ApiError {
	return NewApiError(fiber.StatusUnauthorized, message)
}

func NewForbidden(message string) *ApiError {
	return NewApiError(fiber.StatusForbidden, message)
}

func NewNotFound(message string) *ApiError {
	return NewApiError(fiber.StatusNotFound, message)
}
