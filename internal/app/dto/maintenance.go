package dto

import (
	"time"

	"roomrates/internal/domain/availability"
	"roomrates/internal/domain/pricing"
)

type Block struct {
	ID           int64     `json:"id"`
	RoomID       string    `json:"room_id"`
	CheckIn      string    `json:"check_in"`
	CheckOut     string    `json:"check_out"`
	UnitsBlocked int       `json:"units_blocked"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type SeasonalRate struct {
	ID         int64     `json:"id"`
	RoomID     string    `json:"room_id"`
	Name       string    `json:"name"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	FixedPrice int64     `json:"fixed_price"`
	CreatedAt  time.Time `json:"created_at"`
}

func MapBlock(b availability.Block) Block {
	return Block{
		ID:           int64(b.ID),
		RoomID:       string(b.RoomID),
		CheckIn:      b.Range.CheckIn.String(),
		CheckOut:     b.Range.CheckOut.String(),
		UnitsBlocked: b.UnitsBlocked,
		Reason:       b.Reason,
		CreatedAt:    b.CreatedAt,
	}
}

func MapBlocks(bs []availability.Block) []Block {
	out := make([]Block, 0, len(bs))
	for _, b := range bs {
		out = append(out, MapBlock(b))
	}
	return out
}

func MapRate(r pricing.SeasonalRate) SeasonalRate {
	return SeasonalRate{
		ID:         int64(r.ID),
		RoomID:     string(r.RoomID),
		Name:       r.Name,
		CheckIn:    r.Range.CheckIn.String(),
		CheckOut:   r.Range.CheckOut.String(),
		FixedPrice: r.FixedPrice,
		CreatedAt:  r.CreatedAt,
	}
}

func MapRates(rs []pricing.SeasonalRate) []SeasonalRate {
	out := make([]SeasonalRate, 0, len(rs))
	for _, r := range rs {
		out = append(out, MapRate(r))
	}
	return out
}
