package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

func rng(in, out string) daterange.DateRange {
	return daterange.DateRange{CheckIn: daterange.MustDate(in), CheckOut: daterange.MustDate(out)}
}

func rate(id RateID, in, out string, price int64) SeasonalRate {
	return SeasonalRate{ID: id, RoomID: "r1", Name: "rate", Range: rng(in, out), FixedPrice: price}
}

var room = rooms.Room{ID: "r1", BasePrice: 100, TotalUnits: 1, TotalGuests: 2}

func TestResolver_BasePriceWithoutRates(t *testing.T) {
	res := NewResolver(nil)
	assert.Equal(t, int64(100), res.PriceOn(room, daterange.MustDate("2025-01-01")))
	assert.Equal(t, []int64{100, 100}, res.PricesForRange(room, rng("2025-01-01", "2025-01-03")))
}

func TestResolver_SeasonalOverridePrecedence(t *testing.T) {
	res := NewResolver([]SeasonalRate{rate(1, "2025-12-24", "2025-12-26", 250)})

	prices := res.PricesForRange(room, rng("2025-12-23", "2025-12-27"))
	assert.Equal(t, []int64{100, 250, 250, 100}, prices)
}

func TestResolver_TieBreak(t *testing.T) {
	day := daterange.MustDate("2025-07-01")

	t.Run("earliest start wins", func(t *testing.T) {
		res := NewResolver([]SeasonalRate{
			rate(2, "2025-06-25", "2025-07-05", 300),
			rate(1, "2025-06-20", "2025-07-10", 200),
		})
		got, ok := res.RateOn(room, day)
		require.True(t, ok)
		assert.Equal(t, RateID(1), got.ID)
		assert.Equal(t, int64(200), res.PriceOn(room, day))
	})

	t.Run("same start, shorter range wins", func(t *testing.T) {
		res := NewResolver([]SeasonalRate{
			rate(1, "2025-06-20", "2025-07-10", 200),
			rate(2, "2025-06-20", "2025-07-03", 300),
		})
		assert.Equal(t, int64(300), res.PriceOn(room, day))
	})

	t.Run("same start and length, highest id wins", func(t *testing.T) {
		res := NewResolver([]SeasonalRate{
			rate(7, "2025-06-20", "2025-07-10", 200),
			rate(9, "2025-06-20", "2025-07-10", 400),
			rate(8, "2025-06-20", "2025-07-10", 300),
		})
		assert.Equal(t, int64(400), res.PriceOn(room, day))
	})

	t.Run("order of input does not matter", func(t *testing.T) {
		a := rate(1, "2025-06-20", "2025-07-10", 200)
		b := rate(2, "2025-06-30", "2025-07-02", 300)
		assert.Equal(t, NewResolver([]SeasonalRate{a, b}).PriceOn(room, day), NewResolver([]SeasonalRate{b, a}).PriceOn(room, day))
	})
}

func TestResolver_NonPositivePriceIgnored(t *testing.T) {
	res := NewResolver([]SeasonalRate{
		rate(1, "2025-08-01", "2025-08-03", 0),
		rate(2, "2025-08-02", "2025-08-04", 180),
	})
	r := rng("2025-08-01", "2025-08-05")

	assert.Equal(t, []int64{100, 180, 180, 100}, res.PricesForRange(room, r))
	ignored := res.IgnoredRates(room, r)
	require.Len(t, ignored, 1)
	assert.Equal(t, RateID(1), ignored[0].ID)
}

func TestResolver_OtherRoomsIgnored(t *testing.T) {
	other := rate(1, "2025-01-01", "2025-02-01", 999)
	other.RoomID = "r2"
	res := NewResolver([]SeasonalRate{other})
	assert.Equal(t, int64(100), res.PriceOn(room, daterange.MustDate("2025-01-10")))
}

func TestSeasonalRate_Validate(t *testing.T) {
	assert.NoError(t, rate(0, "2025-01-01", "2025-01-02", 10).Validate(room))
	assert.ErrorIs(t, rate(0, "2025-01-01", "2025-01-02", 0).Validate(room), ErrInvalidRate)
	assert.ErrorIs(t, rate(0, "2025-01-02", "2025-01-01", 10).Validate(room), daterange.ErrInvalidRange)
}
