package utils

import "errors"

var (
	ErrInvalidPreferences = errors.New("invalid travel preferences")
	ErrCompletionFailed   = errors.New("completion service unavailable")
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDatabaseError      = errors.New("database error")
)
