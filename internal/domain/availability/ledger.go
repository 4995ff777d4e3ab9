package availability

import (
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

// Ledger answers unit-availability questions over a snapshot of blocks. It is
// read-only after construction and safe for concurrent use.
type Ledger struct {
	byRoom map[rooms.RoomID][]Block
}

func NewLedger(blocks []Block) Ledger {
	byRoom := make(map[rooms.RoomID][]Block)
	for _, b := range blocks {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}
	return Ledger{byRoom: byRoom}
}

func (l Ledger) Blocks(roomID rooms.RoomID) []Block {
	return append([]Block(nil), l.byRoom[roomID]...)
}

// BlockedUnitsOn sums the units of every block of the room active on day.
// The sum is not capped at the room's inventory.
func (l Ledger) BlockedUnitsOn(roomID rooms.RoomID, day daterange.Date) int {
	total := 0
	for _, b := range l.byRoom[roomID] {
		if b.UnitsBlocked <= 0 {
			continue
		}
		if b.Range.ContainsDay(day) {
			total += b.UnitsBlocked
		}
	}
	return total
}

// MinFreeUnits is the free inventory on the worst day of r, floored at zero.
func (l Ledger) MinFreeUnits(room rooms.Room, r daterange.DateRange) int {
	worst := 0
	for day := range r.Days() {
		if blocked := l.BlockedUnitsOn(room.ID, day); blocked > worst {
			worst = blocked
		}
	}
	return FreeUnits(room, worst)
}

func (l Ledger) IsFullyBlocked(room rooms.Room, r daterange.DateRange) bool {
	return l.MinFreeUnits(room, r) <= 0
}

// OverblockedDays lists the days of r whose blocked units exceed the room's
// inventory.
func (l Ledger) OverblockedDays(room rooms.Room, r daterange.DateRange) []daterange.Date {
	var out []daterange.Date
	for day := range r.Days() {
		if l.BlockedUnitsOn(room.ID, day) > room.TotalUnits {
			out = append(out, day)
		}
	}
	return out
}

// FullyBlockedSpans merges consecutive fully blocked days of window into ranges.
func (l Ledger) FullyBlockedSpans(room rooms.Room, window daterange.DateRange) []daterange.DateRange {
	var spans []daterange.DateRange
	for day := range window.Days() {
		if FreeUnits(room, l.BlockedUnitsOn(room.ID, day)) > 0 {
			continue
		}
		dayRange := daterange.Window(day, 1)
		if n := len(spans); n > 0 {
			if merged, ok := spans[n-1].Merge(dayRange); ok {
				spans[n-1] = merged
				continue
			}
		}
		spans = append(spans, dayRange)
	}
	return spans
}

// FreeUnits converts a blocked count into free units, never below zero.
func FreeUnits(room rooms.Room, blocked int) int {
	free := room.TotalUnits - blocked
	if free < 0 {
		return 0
	}
	return free
}
