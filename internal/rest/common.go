package rest

import (
	"errors"
	"myFashionHub/domain"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

// userIDFromContext reads the identity set by the auth middleware.
// Zero means anonymous.
func userIDFromContext(c echo.Context) uint64 {
	userID, ok := c.Get("user_id").(uint64)
	if !ok {
		return 0
	}
	return userID
}

// statusForError maps domain sentinels to HTTP statuses; anything
// unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyBag):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
