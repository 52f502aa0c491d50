package memory

import "pet-walks/internal/platform/apperr"

var (
	ErrNotFound      = apperr.NotFound("memory", "record not found")
	ErrAlreadyExists = apperr.State("memory", "record already exists")
)
