package availability

import (
	"context"
	"log/slog"

	"roomrates/internal/app/dto"
	"roomrates/internal/app/handlers/support"
	"roomrates/internal/app/policies"
	"roomrates/internal/app/queries"
	"roomrates/internal/domain/quote"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

const evaluateRoomKey = "availability.evaluate_room"

type EvaluateRoomQuery struct {
	RoomID string
	Range  daterange.DateRange
	Guests int
}

func (q EvaluateRoomQuery) Key() string { return evaluateRoomKey }

type EvaluateRoomHandler struct {
	Snapshots support.Snapshots
	// Cache is optional.
	Cache  policies.QuoteCache
	Logger *slog.Logger
}

func (h *EvaluateRoomHandler) Handle(ctx context.Context, q EvaluateRoomQuery) (dto.RoomAvailability, error) {
	if err := q.Range.Validate(); err != nil {
		return dto.RoomAvailability{}, quote.ErrInvalidRange
	}
	room, err := h.Snapshots.Rooms.Room(ctx, rooms.RoomID(q.RoomID))
	if err != nil {
		return dto.RoomAvailability{}, err
	}
	query := quote.Query{RoomID: room.ID, Range: q.Range, Guests: q.Guests}

	key := policies.QuoteCacheKey(room, query)
	if h.Cache != nil {
		cached, ok, err := h.Cache.Get(ctx, key)
		if err != nil && h.Logger != nil {
			h.Logger.WarnContext(ctx, "quote cache read failed", "key", key, "error", err)
		}
		if ok {
			return dto.MapRoomAvailability(cached, q.Guests), nil
		}
	}

	engine, err := h.Snapshots.Engine(ctx, room.ID)
	if err != nil {
		return dto.RoomAvailability{}, err
	}
	res, err := engine.Evaluate(query, room)
	if err != nil {
		return dto.RoomAvailability{}, err
	}
	support.LogWarnings(ctx, h.Logger, res.Warnings)

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, key, res); err != nil && h.Logger != nil {
			h.Logger.WarnContext(ctx, "quote cache write failed", "key", key, "error", err)
		}
	}
	return dto.MapRoomAvailability(res, q.Guests), nil
}

var _ queries.Handler[EvaluateRoomQuery, dto.RoomAvailability] = (*EvaluateRoomHandler)(nil)
