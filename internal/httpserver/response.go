package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"electroshop/internal/domain"
)

// apiMessage is the envelope used for confirmations and errors.
type apiMessage struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

// writeError maps domain error kinds to HTTP statuses. Anything outside
// the known kinds is an internal error and reported opaquely.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, apiMessage{Message: err.Error(), Status: false})
	case errors.Is(err, domain.ErrInvalid):
		c.JSON(http.StatusBadRequest, apiMessage{Message: err.Error(), Status: false})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, apiMessage{Message: err.Error(), Status: false})
	default:
		c.JSON(http.StatusInternalServerError, apiMessage{Message: "internal error", Status: false})
	}
}
