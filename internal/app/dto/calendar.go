package dto

import (
	"roomrates/internal/domain/quote"
	"roomrates/internal/domain/shared/daterange"
)

type CalendarDay struct {
	Date         string `json:"date"`
	BlockedUnits int    `json:"blocked_units"`
	FreeUnits    int    `json:"free_units"`
	FullyBlocked bool   `json:"fully_blocked"`
	Overblocked  bool   `json:"overblocked,omitempty"`
	Price        int64  `json:"price"`
	RateName     string `json:"rate_name,omitempty"`
}

type RoomCalendar struct {
	RoomID       string        `json:"room_id"`
	From         string        `json:"from"`
	To           string        `json:"to"`
	TotalUnits   int           `json:"total_units"`
	BasePrice    int64         `json:"base_price"`
	Days         []CalendarDay `json:"days"`
	BlockedSpans []DateRange   `json:"blocked_spans"`
}

func MapCalendar(roomID string, totalUnits int, basePrice int64, window daterange.DateRange, days []quote.DayStatus, spans []daterange.DateRange) RoomCalendar {
	cal := RoomCalendar{
		RoomID:       roomID,
		From:         window.CheckIn.String(),
		To:           window.CheckOut.String(),
		TotalUnits:   totalUnits,
		BasePrice:    basePrice,
		Days:         make([]CalendarDay, 0, len(days)),
		BlockedSpans: make([]DateRange, 0, len(spans)),
	}
	for _, d := range days {
		cal.Days = append(cal.Days, CalendarDay{
			Date:         d.Date.String(),
			BlockedUnits: d.BlockedUnits,
			FreeUnits:    d.FreeUnits,
			FullyBlocked: d.FullyBlocked,
			Overblocked:  d.Overblocked,
			Price:        d.Price,
			RateName:     d.RateName,
		})
	}
	for _, s := range spans {
		cal.BlockedSpans = append(cal.BlockedSpans, MapRange(s))
	}
	return cal
}
