package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

func rng(in, out string) daterange.DateRange {
	return daterange.DateRange{CheckIn: daterange.MustDate(in), CheckOut: daterange.MustDate(out)}
}

func block(id BlockID, room rooms.RoomID, in, out string, units int) Block {
	return Block{ID: id, RoomID: room, Range: rng(in, out), UnitsBlocked: units}
}

func TestLedger_NoBlocksMeansFullInventory(t *testing.T) {
	room := rooms.Room{ID: "r1", TotalUnits: 3}
	l := NewLedger(nil)

	assert.Equal(t, 0, l.BlockedUnitsOn("r1", daterange.MustDate("2025-01-01")))
	assert.Equal(t, 3, l.MinFreeUnits(room, rng("2025-01-01", "2025-01-10")))
	assert.Equal(t, 3, l.MinFreeUnits(room, rng("2030-05-01", "2030-05-02")))
	assert.False(t, l.IsFullyBlocked(room, rng("2025-01-01", "2025-01-10")))
}

func TestLedger_AdditiveBlocking(t *testing.T) {
	room := rooms.Room{ID: "r1", TotalUnits: 2}
	l := NewLedger([]Block{
		block(1, "r1", "2025-04-01", "2025-04-03", 1),
		block(2, "r1", "2025-04-02", "2025-04-04", 1),
	})

	assert.Equal(t, 2, l.BlockedUnitsOn("r1", daterange.MustDate("2025-04-02")))
	assert.Equal(t, 0, l.MinFreeUnits(room, rng("2025-04-01", "2025-04-05")))
	assert.True(t, l.IsFullyBlocked(room, rng("2025-04-02", "2025-04-03")))
	assert.Equal(t, 1, l.MinFreeUnits(room, rng("2025-04-03", "2025-04-05")))
}

func TestLedger_WorstDayDominates(t *testing.T) {
	room := rooms.Room{ID: "r1", TotalUnits: 3}
	l := NewLedger([]Block{block(1, "r1", "2025-05-04", "2025-05-05", 2)})

	// free units per day: 3,3,3,1,3
	r := rng("2025-05-01", "2025-05-06")
	assert.Equal(t, 1, l.MinFreeUnits(room, r))
	assert.False(t, l.IsFullyBlocked(room, r))
}

func TestLedger_BlocksOfOtherRoomsIgnored(t *testing.T) {
	room := rooms.Room{ID: "r1", TotalUnits: 1}
	l := NewLedger([]Block{block(1, "r2", "2025-01-01", "2025-02-01", 1)})

	assert.Equal(t, 1, l.MinFreeUnits(room, rng("2025-01-10", "2025-01-12")))
	assert.Equal(t, 0, l.BlockedUnitsOn("unknown", daterange.MustDate("2025-01-10")))
}

func TestLedger_HalfOpenBlockEnd(t *testing.T) {
	room := rooms.Room{ID: "r1", TotalUnits: 1}
	l := NewLedger([]Block{block(1, "r1", "2025-03-10", "2025-03-12", 1)})

	assert.Equal(t, 1, l.MinFreeUnits(room, rng("2025-03-12", "2025-03-14")))
	assert.Equal(t, 0, l.MinFreeUnits(room, rng("2025-03-11", "2025-03-12")))
}

func TestLedger_OverblockedIsClamped(t *testing.T) {
	room := rooms.Room{ID: "r1", TotalUnits: 2}
	l := NewLedger([]Block{
		block(1, "r1", "2025-06-01", "2025-06-03", 2),
		block(2, "r1", "2025-06-02", "2025-06-03", 2),
		block(3, "r1", "2025-06-01", "2025-06-05", -4),
	})
	r := rng("2025-06-01", "2025-06-04")

	assert.Equal(t, 4, l.BlockedUnitsOn("r1", daterange.MustDate("2025-06-02")))
	assert.Equal(t, 0, l.MinFreeUnits(room, r))
	assert.Equal(t, []daterange.Date{daterange.MustDate("2025-06-02")}, l.OverblockedDays(room, r))
}

func TestLedger_FullyBlockedSpans(t *testing.T) {
	room := rooms.Room{ID: "r1", TotalUnits: 2}
	l := NewLedger([]Block{
		block(1, "r1", "2025-07-01", "2025-07-03", 2),
		block(2, "r1", "2025-07-03", "2025-07-04", 1),
		block(3, "r1", "2025-07-03", "2025-07-05", 1),
		block(4, "r1", "2025-07-08", "2025-07-09", 2),
	})

	spans := l.FullyBlockedSpans(room, rng("2025-07-02", "2025-07-10"))
	assert.Equal(t, []daterange.DateRange{
		rng("2025-07-02", "2025-07-04"),
		rng("2025-07-08", "2025-07-09"),
	}, spans)
}

func TestBlock_Validate(t *testing.T) {
	room := rooms.Room{ID: "r1", TotalUnits: 2}

	assert.NoError(t, block(0, "r1", "2025-01-01", "2025-01-02", 2).Validate(room))
	assert.ErrorIs(t, block(0, "r1", "2025-01-01", "2025-01-02", 3).Validate(room), ErrInvalidBlock)
	assert.ErrorIs(t, block(0, "r1", "2025-01-01", "2025-01-02", 0).Validate(room), ErrInvalidBlock)
	assert.ErrorIs(t, block(0, "r1", "2025-01-02", "2025-01-02", 1).Validate(room), daterange.ErrInvalidRange)
	assert.ErrorIs(t, block(0, "r2", "2025-01-01", "2025-01-02", 1).Validate(room), ErrInvalidBlock)
}
