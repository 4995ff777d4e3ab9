package dto

import (
	"roomrates/internal/domain/quote"
	"roomrates/internal/domain/shared/daterange"
)

type Warning struct {
	Kind   string `json:"kind"`
	Date   string `json:"date,omitempty"`
	RateID int64  `json:"rate_id,omitempty"`
	Detail string `json:"detail"`
}

type RoomAvailability struct {
	RoomID            string    `json:"room_id"`
	CheckIn           string    `json:"check_in"`
	CheckOut          string    `json:"check_out"`
	Guests            int       `json:"guests"`
	Nights            int       `json:"nights"`
	IsAvailable       bool      `json:"is_available"`
	MinFreeUnits      int       `json:"min_free_units"`
	NightlyPrices     []int64   `json:"nightly_prices"`
	TotalPrice        int64     `json:"total_price"`
	NightlyEquivalent int64     `json:"nightly_equivalent"`
	GuestsExceeded    bool      `json:"guests_exceeded"`
	Clamped           bool      `json:"clamped"`
	Warnings          []Warning `json:"warnings,omitempty"`
}

func MapRoomAvailability(res quote.Result, guests int) RoomAvailability {
	out := RoomAvailability{
		RoomID:            string(res.RoomID),
		CheckIn:           res.Range.CheckIn.String(),
		CheckOut:          res.Range.CheckOut.String(),
		Guests:            guests,
		Nights:            res.Nights,
		IsAvailable:       res.IsAvailable,
		MinFreeUnits:      res.MinFreeUnits,
		NightlyPrices:     append([]int64(nil), res.NightlyPrices...),
		TotalPrice:        res.TotalPrice,
		NightlyEquivalent: res.NightlyEquivalent(),
		GuestsExceeded:    res.GuestsExceeded,
		Clamped:           len(res.Warnings) > 0,
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, MapWarning(w))
	}
	return out
}

func MapWarning(w quote.Warning) Warning {
	return Warning{Kind: string(w.Kind), Date: w.Date.String(), RateID: int64(w.RateID), Detail: w.Detail}
}

type DateRange struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func MapRange(r daterange.DateRange) DateRange {
	return DateRange{CheckIn: r.CheckIn.String(), CheckOut: r.CheckOut.String()}
}
