package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "roomrates/internal/app/outbox"
	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

func rng(in, out string) daterange.DateRange {
	return daterange.DateRange{CheckIn: daterange.MustDate(in), CheckOut: daterange.MustDate(out)}
}

func TestRoomRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	require.NoError(t, repo.SaveProperty(ctx, rooms.Property{ID: "p2", Name: "Second", Rooms: []rooms.Room{{ID: "r3", TotalUnits: 1}}}))
	require.NoError(t, repo.SaveProperty(ctx, rooms.Property{ID: "p1", Name: "First", Rooms: []rooms.Room{{ID: "r1", TotalUnits: 2}, {ID: "r2", TotalUnits: 1}}}))

	room, err := repo.Room(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, rooms.PropertyID("p1"), room.PropertyID)

	_, err = repo.Room(ctx, "missing")
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
	_, err = repo.Property(ctx, "missing")
	assert.ErrorIs(t, err, rooms.ErrPropertyNotFound)

	all, err := repo.Properties(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, rooms.PropertyID("p2"), all[0].ID)

	require.NoError(t, repo.BumpVersion(ctx, "r1"))
	room, err = repo.Room(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), room.Version)

	// replacing a property drops rooms it no longer has
	require.NoError(t, repo.SaveProperty(ctx, rooms.Property{ID: "p1", Name: "First", Rooms: []rooms.Room{{ID: "r1", TotalUnits: 2}}}))
	_, err = repo.Room(ctx, "r2")
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestRoomRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()
	require.NoError(t, repo.SaveProperty(ctx, rooms.Property{ID: "p1", Rooms: []rooms.Room{{ID: "r1", BasePrice: 100}}}))

	p, err := repo.Property(ctx, "p1")
	require.NoError(t, err)
	p.Rooms[0].BasePrice = 1

	room, err := repo.Room(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), room.BasePrice)
}

func TestBlockRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBlockRepository()

	b1, err := repo.Add(ctx, domainavailability.Block{RoomID: "r1", Range: rng("2025-01-01", "2025-01-02"), UnitsBlocked: 1})
	require.NoError(t, err)
	b2, err := repo.Add(ctx, domainavailability.Block{RoomID: "r2", Range: rng("2025-01-01", "2025-01-02"), UnitsBlocked: 1})
	require.NoError(t, err)
	b3, err := repo.Add(ctx, domainavailability.Block{RoomID: "r1", Range: rng("2025-01-05", "2025-01-06"), UnitsBlocked: 1})
	require.NoError(t, err)
	assert.True(t, b1.ID < b2.ID && b2.ID < b3.ID)

	got, err := repo.Blocks(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b1.ID, got[0].ID)
	assert.Equal(t, b3.ID, got[1].ID)

	_, err = repo.Remove(ctx, "r2", b1.ID)
	assert.ErrorIs(t, err, domainavailability.ErrBlockNotFound)

	removed, err := repo.Remove(ctx, "r1", b1.ID)
	require.NoError(t, err)
	assert.Equal(t, b1, removed)

	got, err = repo.Blocks(ctx, "r1", "r2")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRateRepository()

	first, err := repo.Add(ctx, domainpricing.SeasonalRate{RoomID: "r1", Name: "a", Range: rng("2025-01-01", "2025-01-05"), FixedPrice: 10})
	require.NoError(t, err)
	second, err := repo.Add(ctx, domainpricing.SeasonalRate{RoomID: "r1", Name: "b", Range: rng("2025-01-01", "2025-01-05"), FixedPrice: 20})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID, "newer rates get higher ids")

	got, err := repo.Rates(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = repo.Remove(ctx, "r1", 99)
	assert.ErrorIs(t, err, domainpricing.ErrRateNotFound)
}

type recordingProducer struct {
	fail   bool
	topics []string
	keys   []string
}

func (p *recordingProducer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	return nil
}

func TestOutbox_FlushPublishesAndRetainsFailures(t *testing.T) {
	ctx := context.Background()
	producer := &recordingProducer{fail: true}
	box := NewOutbox(producer, nil, "dev.")

	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "1", Name: "availability.block_added", Aggregate: "r1", Payload: []byte(`{}`)}))
	require.NoError(t, box.Flush(ctx))
	assert.Equal(t, 1, box.Pending())

	producer.fail = false
	require.NoError(t, box.Flush(ctx))
	assert.Equal(t, 0, box.Pending())
	assert.Equal(t, []string{"dev.availability.events.v1"}, producer.topics)
	assert.Equal(t, []string{"r1"}, producer.keys)
}

func TestOutbox_WithoutProducerDrains(t *testing.T) {
	ctx := context.Background()
	box := NewOutbox(nil, nil, "")
	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "1", Name: "pricing.rate_added"}))
	require.NoError(t, box.Flush(ctx))
	assert.Equal(t, 0, box.Pending())
}
