package daterange

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rng(in, out string) DateRange {
	return DateRange{CheckIn: MustDate(in), CheckOut: MustDate(out)}
}

func TestParseDate_NoZoneShift(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", d.String())
	assert.True(t, d.Equal(NewDate(2025, time.June, 1)))

	_, err = ParseDate("2025-06-01T10:00:00Z")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("2025-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateOf_UsesLocalCalendarFields(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	late := time.Date(2025, time.January, 1, 23, 30, 0, 0, tokyo)
	assert.Equal(t, "2025-01-01", DateOf(late).String())

	early := time.Date(2025, time.January, 1, 0, 30, 0, 0, tokyo)
	assert.Equal(t, "2025-01-01", DateOf(early).String())
}

func TestNights(t *testing.T) {
	assert.Equal(t, 4, rng("2025-12-23", "2025-12-27").Nights())
	assert.Equal(t, 0, rng("2025-12-23", "2025-12-23").Nights())
	// DST change in many zones; dates carry no zone so nights stay whole.
	assert.Equal(t, 2, rng("2025-03-29", "2025-03-31").Nights())
	assert.Equal(t, 365, rng("2025-01-01", "2026-01-01").Nights())
}

func TestNew_RejectsEmptyAndInverted(t *testing.T) {
	_, err := New(MustDate("2025-01-05"), MustDate("2025-01-05"))
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = New(MustDate("2025-01-06"), MustDate("2025-01-05"))
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = New(Date{}, MustDate("2025-01-05"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	dr, err := Parse("2025-01-01", "2025-01-03")
	require.NoError(t, err)
	assert.Equal(t, 2, dr.Nights())
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b DateRange
		want bool
	}{
		{"touching boundary", rng("2025-01-01", "2025-01-05"), rng("2025-01-05", "2025-01-10"), false},
		{"one day shared", rng("2025-01-01", "2025-01-06"), rng("2025-01-05", "2025-01-10"), true},
		{"contained", rng("2025-01-01", "2025-01-10"), rng("2025-01-03", "2025-01-04"), true},
		{"identical", rng("2025-01-01", "2025-01-02"), rng("2025-01-01", "2025-01-02"), true},
		{"disjoint", rng("2025-01-01", "2025-01-02"), rng("2025-02-01", "2025-02-02"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.a.Overlaps(tc.b), tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestContainsDay(t *testing.T) {
	r := rng("2025-01-01", "2025-01-03")
	assert.True(t, r.ContainsDay(MustDate("2025-01-01")))
	assert.True(t, r.ContainsDay(MustDate("2025-01-02")))
	assert.False(t, r.ContainsDay(MustDate("2025-01-03")))
	assert.False(t, r.ContainsDay(MustDate("2024-12-31")))
}

func TestDays_OrderedAndRestartable(t *testing.T) {
	r := rng("2025-12-30", "2026-01-02")
	want := []string{"2025-12-30", "2025-12-31", "2026-01-01"}

	for pass := 0; pass < 2; pass++ {
		var got []string
		for d := range r.Days() {
			got = append(got, d.String())
		}
		assert.Equal(t, want, got)
	}
	assert.Len(t, r.DayList(), 3)
	assert.Empty(t, rng("2025-01-01", "2025-01-01").DayList())
}

func TestMergeAndIntersect(t *testing.T) {
	merged, ok := rng("2025-01-01", "2025-01-03").Merge(rng("2025-01-03", "2025-01-05"))
	require.True(t, ok)
	assert.Equal(t, rng("2025-01-01", "2025-01-05"), merged)

	_, ok = rng("2025-01-01", "2025-01-03").Merge(rng("2025-01-04", "2025-01-05"))
	assert.False(t, ok)

	inter, ok := rng("2025-01-01", "2025-01-05").Intersect(rng("2025-01-03", "2025-01-10"))
	require.True(t, ok)
	assert.Equal(t, rng("2025-01-03", "2025-01-05"), inter)
}

func TestDate_JSON(t *testing.T) {
	payload, err := json.Marshal(rng("2025-03-09", "2025-03-11"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"check_in":"2025-03-09","check_out":"2025-03-11"}`, string(payload))

	var back DateRange
	require.NoError(t, json.Unmarshal(payload, &back))
	assert.Equal(t, rng("2025-03-09", "2025-03-11"), back)

	var bad Date
	assert.ErrorIs(t, json.Unmarshal([]byte(`"03/09/2025"`), &bad), ErrInvalidDate)
}
