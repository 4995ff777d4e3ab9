package quote

import (
	"roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

type WarningKind string

const (
	// WarningUnitsOverblocked: blocks on Date add up to more than the room's
	// inventory; free units were floored at zero.
	WarningUnitsOverblocked WarningKind = "units_overblocked"
	// WarningNonPositiveRate: a seasonal rate with a price <= 0 was skipped.
	WarningNonPositiveRate WarningKind = "non_positive_rate"
)

// Warning reports stored data the engine had to clamp to answer a query.
type Warning struct {
	Kind   WarningKind    `json:"kind"`
	RoomID rooms.RoomID   `json:"room_id"`
	Date   daterange.Date `json:"date,omitzero"`
	RateID pricing.RateID `json:"rate_id,omitempty"`
	Detail string         `json:"detail"`
}
