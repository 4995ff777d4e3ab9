package pricing

import (
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

// Resolver picks the nightly price of a room from a snapshot of seasonal rates.
//
// When several rates cover the same day the winner is decided in this order:
//  1. the rate with the earliest start;
//  2. on equal starts, the rate with the fewest nights;
//  3. on equal length, the rate with the highest id (the newest).
//
// Rates with a non-positive FixedPrice are ignored, so the day falls back to
// the next candidate or to the room's base price.
type Resolver struct {
	byRoom map[rooms.RoomID][]SeasonalRate
}

func NewResolver(rates []SeasonalRate) Resolver {
	byRoom := make(map[rooms.RoomID][]SeasonalRate)
	for _, r := range rates {
		byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
	}
	return Resolver{byRoom: byRoom}
}

func (res Resolver) Rates(roomID rooms.RoomID) []SeasonalRate {
	return append([]SeasonalRate(nil), res.byRoom[roomID]...)
}

// RateOn returns the seasonal rate that applies to day, if any.
func (res Resolver) RateOn(room rooms.Room, day daterange.Date) (SeasonalRate, bool) {
	var (
		best  SeasonalRate
		found bool
	)
	for _, rate := range res.byRoom[room.ID] {
		if rate.FixedPrice <= 0 || !rate.Range.ContainsDay(day) {
			continue
		}
		if !found || precedes(rate, best) {
			best = rate
			found = true
		}
	}
	return best, found
}

func (res Resolver) PriceOn(room rooms.Room, day daterange.Date) int64 {
	if rate, ok := res.RateOn(room, day); ok {
		return rate.FixedPrice
	}
	return room.BasePrice
}

// PricesForRange returns one price per night of r, in day order.
func (res Resolver) PricesForRange(room rooms.Room, r daterange.DateRange) []int64 {
	prices := make([]int64, 0, max(r.Nights(), 0))
	for day := range r.Days() {
		prices = append(prices, res.PriceOn(room, day))
	}
	return prices
}

// IgnoredRates lists rates overlapping r that were skipped because their
// price is not positive.
func (res Resolver) IgnoredRates(room rooms.Room, r daterange.DateRange) []SeasonalRate {
	var out []SeasonalRate
	for _, rate := range res.byRoom[room.ID] {
		if rate.FixedPrice <= 0 && rate.Range.Overlaps(r) {
			out = append(out, rate)
		}
	}
	return out
}

func precedes(a, b SeasonalRate) bool {
	if c := a.Range.CheckIn.Compare(b.Range.CheckIn); c != 0 {
		return c < 0
	}
	if an, bn := a.Range.Nights(), b.Range.Nights(); an != bn {
		return an < bn
	}
	return a.ID > b.ID
}
