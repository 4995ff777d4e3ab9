package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

var (
	ErrRateNotFound = errors.New("pricing: seasonal rate not found")
	ErrInvalidRate  = errors.New("pricing: invalid seasonal rate")
)

// RateID grows with creation order, so a higher id is a newer rate.
type RateID int64

// SeasonalRate replaces a room's base price with FixedPrice for every night
// inside Range.
type SeasonalRate struct {
	ID         RateID              `json:"id"`
	RoomID     rooms.RoomID        `json:"room_id"`
	Name       string              `json:"name"`
	Range      daterange.DateRange `json:"range"`
	FixedPrice int64               `json:"fixed_price"`
	CreatedAt  time.Time           `json:"created_at"`
}

func (r SeasonalRate) Validate(room rooms.Room) error {
	if err := r.Range.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRate, err)
	}
	if r.RoomID != room.ID {
		return fmt.Errorf("%w: rate belongs to room %q", ErrInvalidRate, r.RoomID)
	}
	if r.FixedPrice <= 0 {
		return fmt.Errorf("%w: fixed_price must be positive", ErrInvalidRate)
	}
	return nil
}

type Repository interface {
	// Rates returns every seasonal rate of the given rooms ordered by id.
	Rates(ctx context.Context, roomIDs ...rooms.RoomID) ([]SeasonalRate, error)
	// Add stores r under a fresh, increasing id and returns the stored rate.
	Add(ctx context.Context, r SeasonalRate) (SeasonalRate, error)
	Remove(ctx context.Context, roomID rooms.RoomID, id RateID) (SeasonalRate, error)
}
