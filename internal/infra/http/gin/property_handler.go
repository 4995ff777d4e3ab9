package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"roomrates/internal/app/dto"
	listingapp "roomrates/internal/app/handlers/listings"
	"roomrates/internal/app/queries"
)

// PropertyHandler wires property listing queries to HTTP.
type PropertyHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

// Catalog lists properties for a stay, sorted and paginated.
func (h PropertyHandler) Catalog(c *gin.Context) {
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
	take := parseInt(c.Query("take"))
	query := listingapp.SearchPropertiesQuery{
		Range:         stay,
		Guests:        guests,
		Sort:          c.Query("sort"),
		Order:         c.Query("order"),
		OnlyAvailable: parseBool(c.Query("available")),
		Limit:         take,
		Offset:        pageOffset(parseInt(c.Query("page")), take),
	}
	result, err := queries.Ask[listingapp.SearchPropertiesQuery, dto.PropertyCatalog](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PropertyHandler) Availability(c *gin.Context) {
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
	query := listingapp.PropertyAvailabilityQuery{PropertyID: c.Param("id"), Range: stay, Guests: guests}
	result, err := queries.Ask[listingapp.PropertyAvailabilityQuery, dto.PropertyAvailability](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PropertyHTTP = PropertyHandler{}
