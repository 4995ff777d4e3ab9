package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

var (
	ErrBlockNotFound = errors.New("availability: block not found")
	ErrInvalidBlock  = errors.New("availability: invalid block")
)

type BlockID int64

// Block takes UnitsBlocked units of a room out of inventory for every day of
// Range. Blocks may overlap; their units add up per day.
type Block struct {
	ID           BlockID             `json:"id"`
	RoomID       rooms.RoomID        `json:"room_id"`
	Range        daterange.DateRange `json:"range"`
	UnitsBlocked int                 `json:"units_blocked"`
	Reason       string              `json:"reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Validate checks a block before it is stored. Reads never call it: stored
// data that breaks these rules is tolerated by the Ledger.
func (b Block) Validate(room rooms.Room) error {
	if err := b.Range.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBlock, err)
	}
	if b.RoomID != room.ID {
		return fmt.Errorf("%w: block belongs to room %q", ErrInvalidBlock, b.RoomID)
	}
	if b.UnitsBlocked < 1 {
		return fmt.Errorf("%w: units_blocked must be positive", ErrInvalidBlock)
	}
	if b.UnitsBlocked > room.TotalUnits {
		return fmt.Errorf("%w: units_blocked %d exceeds room total %d", ErrInvalidBlock, b.UnitsBlocked, room.TotalUnits)
	}
	return nil
}

type Repository interface {
	// Blocks returns every block of the given rooms ordered by id.
	Blocks(ctx context.Context, roomIDs ...rooms.RoomID) ([]Block, error)
	// Add stores b under a fresh, increasing id and returns the stored block.
	Add(ctx context.Context, b Block) (Block, error)
	Remove(ctx context.Context, roomID rooms.RoomID, id BlockID) (Block, error)
}
