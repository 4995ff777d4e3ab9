package ginserver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"roomrates/internal/domain/shared/daterange"
)

const (
	defaultWindowDays = 45
	maxWindowDays     = 366
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// parseStay reads a checkIn/checkOut pair. Both are required; ordering is
// checked by the handlers so the error kind stays consistent with the engine.
func parseStay(checkInRaw, checkOutRaw string) (daterange.DateRange, error) {
	checkIn, err := daterange.ParseDate(strings.TrimSpace(checkInRaw))
	if err != nil {
		return daterange.DateRange{}, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := daterange.ParseDate(strings.TrimSpace(checkOutRaw))
	if err != nil {
		return daterange.DateRange{}, fmt.Errorf("checkOut: %w", err)
	}
	return daterange.DateRange{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// resolveWindow defaults a calendar window to defaultWindowDays from today
// and caps it at maxWindowDays. An explicit to must fall after from.
func resolveWindow(fromRaw, toRaw string, now time.Time) (daterange.DateRange, error) {
	from := daterange.DateOf(now.UTC())
	if raw := strings.TrimSpace(fromRaw); raw != "" {
		d, err := daterange.ParseDate(raw)
		if err != nil {
			return daterange.DateRange{}, fmt.Errorf("from: %w", err)
		}
		from = d
	}
	to := from.AddDays(defaultWindowDays)
	if raw := strings.TrimSpace(toRaw); raw != "" {
		d, err := daterange.ParseDate(raw)
		if err != nil {
			return daterange.DateRange{}, fmt.Errorf("to: %w", err)
		}
		to = d
	}
	if !to.After(from) {
		return daterange.DateRange{}, badRequest("to must be after from")
	}
	if from.DaysUntil(to) > maxWindowDays {
		to = from.AddDays(maxWindowDays)
	}
	return daterange.DateRange{CheckIn: from, CheckOut: to}, nil
}

// parseGuests defaults to one guest when the parameter is absent.
func parseGuests(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("totalGuests must be an integer")
	}
	return v, nil
}

func parseID(raw, name string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return 0, badRequest("%s must be a positive integer", name)
	}
	return v, nil
}

func parseInt(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	if value < 0 {
		return 0
	}
	return value
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// pageOffset turns a 1-based page into an offset.
func pageOffset(page, take int) int {
	if page <= 1 || take <= 0 {
		return 0
	}
	return (page - 1) * take
}
