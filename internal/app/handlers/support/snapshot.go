package support

import (
	"context"
	"errors"
	"log/slog"

	"roomrates/internal/domain/availability"
	"roomrates/internal/domain/pricing"
	"roomrates/internal/domain/quote"
	"roomrates/internal/domain/rooms"
)

var ErrSnapshotSourceMissing = errors.New("handlers: snapshot source not configured")

// Snapshots loads one consistent-enough view of rooms, blocks and rates per
// request and builds an engine over it.
type Snapshots struct {
	Rooms  rooms.Repository
	Blocks availability.Repository
	Rates  pricing.Repository
}

func (s Snapshots) ready() error {
	if s.Rooms == nil || s.Blocks == nil || s.Rates == nil {
		return ErrSnapshotSourceMissing
	}
	return nil
}

// Engine indexes the blocks and rates of the given rooms.
func (s Snapshots) Engine(ctx context.Context, roomIDs ...rooms.RoomID) (quote.Engine, error) {
	if err := s.ready(); err != nil {
		return quote.Engine{}, err
	}
	if len(roomIDs) == 0 {
		return quote.NewEngine(nil, nil), nil
	}
	blocks, err := s.Blocks.Blocks(ctx, roomIDs...)
	if err != nil {
		return quote.Engine{}, err
	}
	rates, err := s.Rates.Rates(ctx, roomIDs...)
	if err != nil {
		return quote.Engine{}, err
	}
	return quote.NewEngine(blocks, rates), nil
}

// Room loads a room together with an engine scoped to it.
func (s Snapshots) Room(ctx context.Context, id rooms.RoomID) (rooms.Room, quote.Engine, error) {
	if err := s.ready(); err != nil {
		return rooms.Room{}, quote.Engine{}, err
	}
	room, err := s.Rooms.Room(ctx, id)
	if err != nil {
		return rooms.Room{}, quote.Engine{}, err
	}
	engine, err := s.Engine(ctx, room.ID)
	if err != nil {
		return rooms.Room{}, quote.Engine{}, err
	}
	return room, engine, nil
}

// LogWarnings reports clamped data so operators can fix the stored records.
func LogWarnings(ctx context.Context, logger *slog.Logger, warnings []quote.Warning) {
	if logger == nil {
		return
	}
	for _, w := range warnings {
		logger.WarnContext(ctx, "availability data integrity",
			"kind", w.Kind,
			"room_id", w.RoomID,
			"date", w.Date.String(),
			"rate_id", w.RateID,
			"detail", w.Detail,
		)
	}
}

// AllRoomIDs collects room ids across properties.
func AllRoomIDs(ps []rooms.Property) []rooms.RoomID {
	var ids []rooms.RoomID
	for _, p := range ps {
		ids = append(ids, p.RoomIDs()...)
	}
	return ids
}
