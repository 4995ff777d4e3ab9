package availability

import (
	"time"

	"roomrates/internal/domain/shared/daterange"
)

type BlockAdded struct {
	RoomID       string              `json:"room_id"`
	BlockID      BlockID             `json:"block_id"`
	Range        daterange.DateRange `json:"range"`
	UnitsBlocked int                 `json:"units_blocked"`
	Reason       string              `json:"reason,omitempty"`
	At           time.Time           `json:"at"`
}

func (e BlockAdded) EventName() string     { return "availability.block_added" }
func (e BlockAdded) AggregateID() string   { return e.RoomID }
func (e BlockAdded) OccurredAt() time.Time { return e.At }

type BlockRemoved struct {
	RoomID  string              `json:"room_id"`
	BlockID BlockID             `json:"block_id"`
	Range   daterange.DateRange `json:"range"`
	At      time.Time           `json:"at"`
}

func (e BlockRemoved) EventName() string     { return "availability.block_removed" }
func (e BlockRemoved) AggregateID() string   { return e.RoomID }
func (e BlockRemoved) OccurredAt() time.Time { return e.At }

func BlockAddedEvent(b Block, at time.Time) BlockAdded {
	return BlockAdded{RoomID: string(b.RoomID), BlockID: b.ID, Range: b.Range, UnitsBlocked: b.UnitsBlocked, Reason: b.Reason, At: at.UTC()}
}

func BlockRemovedEvent(b Block, at time.Time) BlockRemoved {
	return BlockRemoved{RoomID: string(b.RoomID), BlockID: b.ID, Range: b.Range, At: at.UTC()}
}
