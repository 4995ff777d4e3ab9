package policies

import (
	"context"
	"fmt"

	"roomrates/internal/domain/quote"
	"roomrates/internal/domain/rooms"
)

// QuoteCache memoizes engine results. Keys embed the room's snapshot version,
// so entries never need explicit invalidation.
type QuoteCache interface {
	Get(ctx context.Context, key string) (quote.Result, bool, error)
	Set(ctx context.Context, key string, result quote.Result) error
}

func QuoteCacheKey(room rooms.Room, q quote.Query) string {
	return fmt.Sprintf("quote:%s:v%d:%s:%s:g%d", room.ID, room.Version, q.Range.CheckIn, q.Range.CheckOut, q.Guests)
}
