package daterange

import (
	"errors"
	"iter"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
	ErrInvalidDate  = errors.New("daterange: date must use YYYY-MM-DD")
)

// DateRange represents a half-open interval of calendar days [CheckIn, CheckOut).
type DateRange struct {
	CheckIn  Date `json:"check_in"`
	CheckOut Date `json:"check_out"`
}

func New(checkIn, checkOut Date) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// Parse builds a range from two YYYY-MM-DD strings.
func Parse(checkIn, checkOut string) (DateRange, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return New(in, out)
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts whole nights between check-in and check-out. It is zero for an
// empty range and negative for an inverted one.
func (dr DateRange) Nights() int {
	return dr.CheckIn.DaysUntil(dr.CheckOut)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) Contains(other DateRange) bool {
	return !other.CheckIn.Before(dr.CheckIn) && !other.CheckOut.After(dr.CheckOut)
}

func (dr DateRange) ContainsDay(d Date) bool {
	return !d.Before(dr.CheckIn) && d.Before(dr.CheckOut)
}

// Days yields every day in [CheckIn, CheckOut) in ascending order. The sequence
// can be ranged over any number of times.
func (dr DateRange) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := dr.CheckIn; d.Before(dr.CheckOut); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// DayList is Days collected into a slice.
func (dr DateRange) DayList() []Date {
	n := dr.Nights()
	if n <= 0 {
		return nil
	}
	out := make([]Date, 0, n)
	for d := range dr.Days() {
		out = append(out, d)
	}
	return out
}

func (dr DateRange) Adjacent(other DateRange) bool {
	return dr.CheckOut.Equal(other.CheckIn) || dr.CheckIn.Equal(other.CheckOut)
}

func (dr DateRange) Merge(other DateRange) (DateRange, bool) {
	if !(dr.Overlaps(other) || dr.Adjacent(other)) {
		return DateRange{}, false
	}
	start := dr.CheckIn
	if other.CheckIn.Before(start) {
		start = other.CheckIn
	}
	end := dr.CheckOut
	if other.CheckOut.After(end) {
		end = other.CheckOut
	}
	return DateRange{CheckIn: start, CheckOut: end}, true
}

// Intersect returns the overlap of two ranges, if any.
func (dr DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !dr.Overlaps(other) {
		return DateRange{}, false
	}
	start := dr.CheckIn
	if other.CheckIn.After(start) {
		start = other.CheckIn
	}
	end := dr.CheckOut
	if other.CheckOut.Before(end) {
		end = other.CheckOut
	}
	return DateRange{CheckIn: start, CheckOut: end}, true
}

func (dr DateRange) String() string {
	return "[" + dr.CheckIn.String() + ", " + dr.CheckOut.String() + ")"
}

// Window is a convenience for a range that starts at from and lasts n days.
func Window(from Date, days int) DateRange {
	return DateRange{CheckIn: from, CheckOut: from.AddDays(days)}
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc != nil {
		now = now.In(loc)
	}
	return DateOf(now)
}
