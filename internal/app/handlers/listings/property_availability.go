package listings

import (
	"context"
	"log/slog"

	"roomrates/internal/app/dto"
	"roomrates/internal/app/handlers/support"
	"roomrates/internal/app/queries"
	domainlistings "roomrates/internal/domain/listings"
	"roomrates/internal/domain/quote"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

const propertyAvailabilityKey = "listings.property_availability"

type PropertyAvailabilityQuery struct {
	PropertyID string
	Range      daterange.DateRange
	Guests     int
}

func (q PropertyAvailabilityQuery) Key() string { return propertyAvailabilityKey }

type PropertyAvailabilityHandler struct {
	Snapshots support.Snapshots
	Logger    *slog.Logger
}

func (h *PropertyAvailabilityHandler) Handle(ctx context.Context, q PropertyAvailabilityQuery) (dto.PropertyAvailability, error) {
	if err := q.Range.Validate(); err != nil {
		return dto.PropertyAvailability{}, quote.ErrInvalidRange
	}
	if h.Snapshots.Rooms == nil {
		return dto.PropertyAvailability{}, support.ErrSnapshotSourceMissing
	}
	property, err := h.Snapshots.Rooms.Property(ctx, rooms.PropertyID(q.PropertyID))
	if err != nil {
		return dto.PropertyAvailability{}, err
	}
	engine, err := h.Snapshots.Engine(ctx, property.RoomIDs()...)
	if err != nil {
		return dto.PropertyAvailability{}, err
	}
	summary, err := domainlistings.Aggregator{Engine: engine}.Summarize(property, quote.Query{Range: q.Range, Guests: q.Guests})
	if err != nil {
		return dto.PropertyAvailability{}, err
	}
	for _, res := range summary.Results {
		support.LogWarnings(ctx, h.Logger, res.Warnings)
	}
	return dto.MapPropertyAvailability(summary, q.Guests), nil
}

var _ queries.Handler[PropertyAvailabilityQuery, dto.PropertyAvailability] = (*PropertyAvailabilityHandler)(nil)
