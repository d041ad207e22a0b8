package domain

import "errors"

// ErrNotFound is returned when the requested trip or attached record does
// not exist in the repository.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. empty message role, blank scope identity where one is required).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
