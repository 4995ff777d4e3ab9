package quote

import (
	"errors"
	"fmt"

	"roomrates/internal/domain/availability"
	"roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

// ErrInvalidRange rejects stays of less than one night. It wraps
// daterange.ErrInvalidRange.
var ErrInvalidRange = fmt.Errorf("quote: stay must span at least one night: %w", daterange.ErrInvalidRange)

// Query asks whether Guests guests can stay in a room for Range.
type Query struct {
	RoomID rooms.RoomID        `json:"room_id"`
	Range  daterange.DateRange `json:"range"`
	Guests int                 `json:"guests"`
}

// Result is the availability and price of one room for one query.
type Result struct {
	RoomID         rooms.RoomID        `json:"room_id"`
	Range          daterange.DateRange `json:"range"`
	Nights         int                 `json:"nights"`
	IsAvailable    bool                `json:"is_available"`
	MinFreeUnits   int                 `json:"min_free_units"`
	NightlyPrices  []int64             `json:"nightly_prices"`
	TotalPrice     int64               `json:"total_price"`
	GuestsExceeded bool                `json:"guests_exceeded"`
	Warnings       []Warning           `json:"warnings,omitempty"`
}

// NightlyEquivalent is the total price divided by nights, rounded down.
func (r Result) NightlyEquivalent() int64 {
	if r.Nights <= 0 {
		return 0
	}
	return r.TotalPrice / int64(r.Nights)
}

// Engine combines a block ledger and a rate resolver. It holds no mutable
// state, so one Engine may serve concurrent evaluations.
type Engine struct {
	ledger   availability.Ledger
	resolver pricing.Resolver
}

func New(ledger availability.Ledger, resolver pricing.Resolver) Engine {
	return Engine{ledger: ledger, resolver: resolver}
}

// NewEngine indexes a snapshot of blocks and rates.
func NewEngine(blocks []availability.Block, rates []pricing.SeasonalRate) Engine {
	return New(availability.NewLedger(blocks), pricing.NewResolver(rates))
}

func (e Engine) Ledger() availability.Ledger { return e.ledger }

func (e Engine) Resolver() pricing.Resolver { return e.resolver }

// Evaluate decides availability and price of room for q. The room argument is
// authoritative; q.RoomID is informational. Only a malformed range is an error.
func (e Engine) Evaluate(q Query, room rooms.Room) (Result, error) {
	if err := q.Range.Validate(); err != nil {
		return Result{}, ErrInvalidRange
	}
	nights := q.Range.Nights()

	guestsExceeded := q.Guests > room.TotalGuests
	minFree := e.ledger.MinFreeUnits(room, q.Range)
	prices := e.resolver.PricesForRange(room, q.Range)

	var total int64
	for _, p := range prices {
		total += p
	}

	return Result{
		RoomID:         room.ID,
		Range:          q.Range,
		Nights:         nights,
		IsAvailable:    !guestsExceeded && minFree > 0,
		MinFreeUnits:   minFree,
		NightlyPrices:  prices,
		TotalPrice:     total,
		GuestsExceeded: guestsExceeded,
		Warnings:       e.integrityWarnings(room, q.Range),
	}, nil
}

// DayStatus is one day of a room calendar.
type DayStatus struct {
	Date         daterange.Date `json:"date"`
	BlockedUnits int            `json:"blocked_units"`
	FreeUnits    int            `json:"free_units"`
	FullyBlocked bool           `json:"fully_blocked"`
	Overblocked  bool           `json:"overblocked,omitempty"`
	Price        int64          `json:"price"`
	RateID       pricing.RateID `json:"rate_id,omitempty"`
	RateName     string         `json:"rate_name,omitempty"`
}

// Calendar reports units and price for every day of window. A one-day window
// answers the selected-date panel.
func (e Engine) Calendar(room rooms.Room, window daterange.DateRange) ([]DayStatus, error) {
	if err := window.Validate(); err != nil {
		return nil, ErrInvalidRange
	}
	days := make([]DayStatus, 0, window.Nights())
	for day := range window.Days() {
		blocked := e.ledger.BlockedUnitsOn(room.ID, day)
		free := availability.FreeUnits(room, blocked)
		status := DayStatus{
			Date:         day,
			BlockedUnits: blocked,
			FreeUnits:    free,
			FullyBlocked: free == 0,
			Overblocked:  blocked > room.TotalUnits,
			Price:        room.BasePrice,
		}
		if rate, ok := e.resolver.RateOn(room, day); ok {
			status.Price = rate.FixedPrice
			status.RateID = rate.ID
			status.RateName = rate.Name
		}
		days = append(days, status)
	}
	return days, nil
}

func (e Engine) integrityWarnings(room rooms.Room, r daterange.DateRange) []Warning {
	var out []Warning
	for _, day := range e.ledger.OverblockedDays(room, r) {
		out = append(out, Warning{
			Kind:   WarningUnitsOverblocked,
			RoomID: room.ID,
			Date:   day,
			Detail: fmt.Sprintf("%d units blocked of %d", e.ledger.BlockedUnitsOn(room.ID, day), room.TotalUnits),
		})
	}
	for _, rate := range e.resolver.IgnoredRates(room, r) {
		out = append(out, Warning{
			Kind:   WarningNonPositiveRate,
			RoomID: room.ID,
			RateID: rate.ID,
			Detail: fmt.Sprintf("seasonal rate %q has price %d, base price used", rate.Name, rate.FixedPrice),
		})
	}
	return out
}

// IsInvalidRange reports whether err rejects the requested range.
func IsInvalidRange(err error) bool {
	return errors.Is(err, daterange.ErrInvalidRange)
}
