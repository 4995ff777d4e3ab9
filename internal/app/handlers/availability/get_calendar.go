package availability

import (
	"context"
	"log/slog"

	"roomrates/internal/app/dto"
	"roomrates/internal/app/handlers/support"
	"roomrates/internal/app/queries"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

const getCalendarKey = "availability.calendar"

type GetCalendarQuery struct {
	RoomID string
	Window daterange.DateRange
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	Snapshots support.Snapshots
	Logger    *slog.Logger
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.RoomCalendar, error) {
	room, engine, err := h.Snapshots.Room(ctx, rooms.RoomID(q.RoomID))
	if err != nil {
		return dto.RoomCalendar{}, err
	}
	days, err := engine.Calendar(room, q.Window)
	if err != nil {
		return dto.RoomCalendar{}, err
	}
	for _, d := range days {
		if d.Overblocked && h.Logger != nil {
			h.Logger.WarnContext(ctx, "availability data integrity", "kind", "units_overblocked", "room_id", room.ID, "date", d.Date.String(), "blocked_units", d.BlockedUnits)
		}
	}
	spans := engine.Ledger().FullyBlockedSpans(room, q.Window)
	return dto.MapCalendar(string(room.ID), room.TotalUnits, room.BasePrice, q.Window, days, spans), nil
}

var _ queries.Handler[GetCalendarQuery, dto.RoomCalendar] = (*GetCalendarHandler)(nil)
