package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound),
		errors.Is(err, rooms.ErrPropertyNotFound),
		errors.Is(err, domainavailability.ErrBlockNotFound),
		errors.Is(err, domainpricing.ErrRateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainavailability.ErrInvalidBlock),
		errors.Is(err, domainpricing.ErrInvalidRate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, daterange.ErrInvalidDate),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		}
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
