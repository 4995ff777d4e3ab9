package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"roomrates/internal/app/commands"
	"roomrates/internal/app/dto"
	availabilityapp "roomrates/internal/app/handlers/availability"
	pricingapp "roomrates/internal/app/handlers/pricing"
	"roomrates/internal/app/queries"
	"roomrates/internal/domain/shared/daterange"
)

// MaintenanceHandler manages non-availability blocks and seasonal rates.
type MaintenanceHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type addBlockRequest struct {
	CheckIn      daterange.Date `json:"check_in"`
	CheckOut     daterange.Date `json:"check_out"`
	UnitsBlocked int            `json:"units_blocked"`
	Reason       string         `json:"reason"`
}

type addRateRequest struct {
	Name       string         `json:"name"`
	CheckIn    daterange.Date `json:"check_in"`
	CheckOut   daterange.Date `json:"check_out"`
	FixedPrice int64          `json:"fixed_price"`
}

func (h MaintenanceHandler) ListBlocks(c *gin.Context) {
	query := availabilityapp.ListBlocksQuery{RoomID: c.Param("id")}
	result, err := queries.Ask[availabilityapp.ListBlocksQuery, []dto.Block](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": result})
}

func (h MaintenanceHandler) AddBlock(c *gin.Context) {
	var req addBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Logger, badRequest("%v", err))
		return
	}
	cmd := availabilityapp.AddBlockCommand{
		RoomID:       c.Param("id"),
		Range:        daterange.DateRange{CheckIn: req.CheckIn, CheckOut: req.CheckOut},
		UnitsBlocked: req.UnitsBlocked,
		Reason:       req.Reason,
	}
	result, err := commands.Dispatch[availabilityapp.AddBlockCommand, dto.Block](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h MaintenanceHandler) RemoveBlock(c *gin.Context) {
	id, err := parseID(c.Param("blockId"), "blockId")
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	cmd := availabilityapp.RemoveBlockCommand{RoomID: c.Param("id"), BlockID: id}
	result, err := commands.Dispatch[availabilityapp.RemoveBlockCommand, dto.Block](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h MaintenanceHandler) ListRates(c *gin.Context) {
	query := pricingapp.ListRatesQuery{RoomID: c.Param("id")}
	result, err := queries.Ask[pricingapp.ListRatesQuery, []dto.SeasonalRate](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": result})
}

func (h MaintenanceHandler) AddRate(c *gin.Context) {
	var req addRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Logger, badRequest("%v", err))
		return
	}
	cmd := pricingapp.AddRateCommand{
		RoomID:     c.Param("id"),
		Name:       req.Name,
		Range:      daterange.DateRange{CheckIn: req.CheckIn, CheckOut: req.CheckOut},
		FixedPrice: req.FixedPrice,
	}
	result, err := commands.Dispatch[pricingapp.AddRateCommand, dto.SeasonalRate](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h MaintenanceHandler) RemoveRate(c *gin.Context) {
	id, err := parseID(c.Param("rateId"), "rateId")
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	cmd := pricingapp.RemoveRateCommand{RoomID: c.Param("id"), RateID: id}
	result, err := commands.Dispatch[pricingapp.RemoveRateCommand, dto.SeasonalRate](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ MaintenanceHTTP = MaintenanceHandler{}
