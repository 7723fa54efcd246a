package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/timetable/internal/timetable"
	"github.com/julianstephens/timetable/internal/utils"
)

// APIError is the JSON error body plus the status it is sent with.
type APIError struct {
	Code    int
	Message string
}

// HandlerFunc returns a response body or an error. It runs with the session
// lock held.
type HandlerFunc func(c *gin.Context) (any, *APIError)

// resolve serializes h against every other request and writes its result.
func (s *Server) resolve(status int, h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, apiErr := s.locked(c, h)
		if apiErr != nil {
			c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		c.JSON(status, result)
	}
}

// locked runs h with the session lock held. The lock is released even when h
// panics, so gin.Recovery leaves the server usable.
func (s *Server) locked(c *gin.Context, h HandlerFunc) (any, *APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return h(c)
}

func badRequest(msg string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: msg}
}

// fromError maps domain errors onto HTTP statuses.
func fromError(err error) *APIError {
	var (
		formatErr     *utils.FormatError
		validationErr *timetable.ValidationError
		conflictErr   *timetable.ConflictError
	)
	switch {
	case errors.As(err, &conflictErr):
		return &APIError{Code: http.StatusConflict, Message: err.Error()}
	case errors.As(err, &formatErr), errors.As(err, &validationErr):
		return &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	default:
		return &APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
}
