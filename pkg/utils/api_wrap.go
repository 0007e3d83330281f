package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinel errors onto HTTP responses.
// Generation either fully succeeds or fails with a single envelope; no
// partial recommendation list ever reaches the client.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidPreferences):
		RespondError(c, http.StatusBadRequest, "Travel type, budget and trip duration are required")
	case errors.Is(err, ErrCompletionFailed):
		log.Printf("Completion error: %v", err)
		RespondError(c, http.StatusBadGateway, "An error occurred while generating the itinerary. Please try again.")
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
