package listings

import (
	"context"
	"log/slog"

	"roomrates/internal/app/dto"
	"roomrates/internal/app/handlers/support"
	"roomrates/internal/app/queries"
	domainlistings "roomrates/internal/domain/listings"
	"roomrates/internal/domain/quote"
	"roomrates/internal/domain/shared/daterange"
)

const (
	searchPropertiesKey = "listings.search"

	defaultSearchLimit = 24
	maxSearchLimit     = 60
)

// SearchPropertiesQuery describes a stay search over every property.
type SearchPropertiesQuery struct {
	Range         daterange.DateRange
	Guests        int
	Sort          string
	Order         string
	OnlyAvailable bool
	Limit         int
	Offset        int
}

func (q SearchPropertiesQuery) Key() string { return searchPropertiesKey }

type SearchPropertiesHandler struct {
	Snapshots support.Snapshots
	Logger    *slog.Logger
}

func (h *SearchPropertiesHandler) Handle(ctx context.Context, q SearchPropertiesQuery) (dto.PropertyCatalog, error) {
	if err := q.Range.Validate(); err != nil {
		return dto.PropertyCatalog{}, quote.ErrInvalidRange
	}
	if h.Snapshots.Rooms == nil {
		return dto.PropertyCatalog{}, support.ErrSnapshotSourceMissing
	}
	properties, err := h.Snapshots.Rooms.Properties(ctx)
	if err != nil {
		return dto.PropertyCatalog{}, err
	}
	engine, err := h.Snapshots.Engine(ctx, support.AllRoomIDs(properties)...)
	if err != nil {
		return dto.PropertyCatalog{}, err
	}

	summaries, err := domainlistings.Aggregator{Engine: engine}.Summaries(properties, quote.Query{Range: q.Range, Guests: q.Guests})
	if err != nil {
		return dto.PropertyCatalog{}, err
	}
	for _, s := range summaries {
		for _, res := range s.Results {
			support.LogWarnings(ctx, h.Logger, res.Warnings)
		}
	}
	if q.OnlyAvailable {
		summaries = domainlistings.OnlyBookable(summaries)
	}
	field, order := domainlistings.NormalizeSort(q.Sort, q.Order)
	domainlistings.SortSummaries(summaries, field, order)

	limit, offset := normalizePage(q.Limit, q.Offset)
	catalog := dto.PropertyCatalog{
		Items:  make([]dto.PropertyCard, 0, limit),
		Total:  len(summaries),
		Limit:  limit,
		Offset: offset,
		Sort:   string(field),
		Order:  string(order),
	}
	if offset < len(summaries) {
		end := min(offset+limit, len(summaries))
		for _, s := range summaries[offset:end] {
			catalog.Items = append(catalog.Items, dto.MapPropertyCard(s))
		}
	}
	return catalog, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ queries.Handler[SearchPropertiesQuery, dto.PropertyCatalog] = (*SearchPropertiesHandler)(nil)
