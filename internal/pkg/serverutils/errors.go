package serverutils

// AppError is the error type services return. The error handler middleware
// maps Code to the HTTP status, so controllers can just bubble errors up.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: 401, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{Code: 500, Message: message}
}
