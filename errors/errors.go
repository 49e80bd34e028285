package errors

import (
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the user-facing error envelope carried from services up to the
// HTTP layer. Status is the HTTP status the handler should respond with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a new Error
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrRecordNotFound      = New("record not found", http.StatusNotFound)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrInvalidPassword     = New("invalid password", http.StatusUnauthorized)
	InActiveUserError      = New("user is inactive", http.StatusUnauthorized)

	// Submission validation failures, surfaced in the order the submission
	// workflow checks them. Each maps to a distinct inline notification.
	ErrCategoryRequired = New("Category Required: please select a problem category", http.StatusBadRequest)
	ErrPhotoRequired    = New("Photo Required: please upload a photo of the problem", http.StatusBadRequest)
	ErrLocationRequired = New("Location Required: please provide the location of the problem", http.StatusBadRequest)

	// Location acquisition failures.
	ErrLocationOutOfRegion = New("the detected location is outside the supported region", http.StatusUnprocessableEntity)
	ErrLocationUnavailable = New("unable to determine your location, please enter the address manually", http.StatusBadGateway)

	// Persistence failures never expose snapshot internals.
	ErrPersistence = New("failed to save changes, please try again", http.StatusInternalServerError)
)

// GetUniqueContraintError maps a storage uniqueness violation to a friendly
// conflict response.
func GetUniqueContraintError(err error) *Error {
	if strings.Contains(err.Error(), "email") {
		return New("email already in use", http.StatusConflict)
	}
	return New("record already exists", http.StatusConflict)
}

// ErrorHandler is handed to the rate limit middleware.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"status":  http.StatusText(http.StatusTooManyRequests),
		"message": "Too many requests. Try again in " + info.ResetTime.Format("15:04:05"),
	})
}
