package pricing

import (
	"time"

	"roomrates/internal/domain/shared/daterange"
)

type RateAdded struct {
	RoomID     string              `json:"room_id"`
	RateID     RateID              `json:"rate_id"`
	Name       string              `json:"name"`
	Range      daterange.DateRange `json:"range"`
	FixedPrice int64               `json:"fixed_price"`
	At         time.Time           `json:"at"`
}

func (e RateAdded) EventName() string     { return "pricing.rate_added" }
func (e RateAdded) AggregateID() string   { return e.RoomID }
func (e RateAdded) OccurredAt() time.Time { return e.At }

type RateRemoved struct {
	RoomID string              `json:"room_id"`
	RateID RateID              `json:"rate_id"`
	Range  daterange.DateRange `json:"range"`
	At     time.Time           `json:"at"`
}

func (e RateRemoved) EventName() string     { return "pricing.rate_removed" }
func (e RateRemoved) AggregateID() string   { return e.RoomID }
func (e RateRemoved) OccurredAt() time.Time { return e.At }

func RateAddedEvent(r SeasonalRate, at time.Time) RateAdded {
	return RateAdded{RoomID: string(r.RoomID), RateID: r.ID, Name: r.Name, Range: r.Range, FixedPrice: r.FixedPrice, At: at.UTC()}
}

func RateRemovedEvent(r SeasonalRate, at time.Time) RateRemoved {
	return RateRemoved{RoomID: string(r.RoomID), RateID: r.ID, Range: r.Range, At: at.UTC()}
}
