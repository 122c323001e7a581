package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("juror account not found")

	// Evaluation record errors
	ErrRecordNotFound = errors.New("evaluation record not found")

	// Draft errors
	ErrDraftNotFound = errors.New("draft not found")
	ErrCorruptDraft  = errors.New("stored draft payload is not valid JSON")
)
