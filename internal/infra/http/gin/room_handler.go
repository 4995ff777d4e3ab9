package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"roomrates/internal/app/dto"
	availabilityapp "roomrates/internal/app/handlers/availability"
	"roomrates/internal/app/queries"
)

// RoomHandler serves the guest-facing availability of one room.
type RoomHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
	Now     func() time.Time
}

func (h RoomHandler) Availability(c *gin.Context) {
	stay, err := parseStay(c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	guests, err := parseGuests(c.Query("totalGuests"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	query := availabilityapp.EvaluateRoomQuery{RoomID: c.Param("id"), Range: stay, Guests: guests}
	result, err := queries.Ask[availabilityapp.EvaluateRoomQuery, dto.RoomAvailability](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Calendar serves the per-day maintenance view; a one-day window is the
// selected-date panel.
func (h RoomHandler) Calendar(c *gin.Context) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	window, err := resolveWindow(c.Query("from"), c.Query("to"), now())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	query := availabilityapp.GetCalendarQuery{RoomID: c.Param("id"), Window: window}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.RoomCalendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ RoomHTTP = RoomHandler{}
