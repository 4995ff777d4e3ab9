package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

func rng(in, out string) daterange.DateRange {
	return daterange.DateRange{CheckIn: daterange.MustDate(in), CheckOut: daterange.MustDate(out)}
}

func TestPropertyDocument_RoundTrip(t *testing.T) {
	p := rooms.Property{
		ID:   "p1",
		Name: "Harbor Inn",
		City: "Porto",
		Rooms: []rooms.Room{
			{ID: "r1", PropertyID: "p1", Name: "Double", BasePrice: 120, TotalUnits: 3, TotalGuests: 2, Version: 4},
		},
	}
	assert.Equal(t, p, newPropertyDocument(p).toProperty())
}

func TestBlockDocument_StoresPlainDates(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	b := domainavailability.Block{ID: 7, RoomID: "r1", Range: rng("2025-03-10", "2025-03-12"), UnitsBlocked: 2, Reason: "paint", CreatedAt: created}

	doc := newBlockDocument(b)
	assert.Equal(t, rangeDocument{CheckIn: "2025-03-10", CheckOut: "2025-03-12"}, doc.Range)

	back, err := doc.toBlock()
	require.NoError(t, err)
	assert.Equal(t, b, back)
}

func TestRateDocument_RoundTrip(t *testing.T) {
	r := domainpricing.SeasonalRate{ID: 3, RoomID: "r1", Name: "christmas", Range: rng("2025-12-24", "2025-12-26"), FixedPrice: 250, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	back, err := newRateDocument(r).toRate()
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestRangeDocument_RejectsGarbage(t *testing.T) {
	_, err := rangeDocument{CheckIn: "2025-13-01", CheckOut: "2025-12-02"}.toRange()
	assert.ErrorIs(t, err, daterange.ErrInvalidDate)
}

func TestRangeDocument_KeepsInvertedRanges(t *testing.T) {
	// reads tolerate bad ranges; the engine treats them as empty
	r, err := rangeDocument{CheckIn: "2025-02-05", CheckOut: "2025-02-01"}.toRange()
	require.NoError(t, err)
	assert.Equal(t, "2025-02-05", r.CheckIn.String())
}
