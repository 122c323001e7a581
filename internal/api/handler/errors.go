package handler

import "github.com/openexpo/jurypanel/internal/api/apierr"

// Re-export apierr helpers for handler ergonomics
var (
	WriteError             = apierr.WriteError
	NewInvalidRequestError = apierr.NewInvalidRequestError
)
