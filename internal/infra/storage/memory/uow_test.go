package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "roomrates/internal/app/outbox"
	"roomrates/internal/app/uow"
	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
)

func newFactory(t *testing.T) Factory {
	t.Helper()
	roomRepo := NewRoomRepository()
	require.NoError(t, roomRepo.SaveProperty(context.Background(), rooms.Property{ID: "p1", Rooms: []rooms.Room{{ID: "r1", TotalUnits: 2}}}))
	return Factory{Rooms: roomRepo, Blocks: NewBlockRepository(), Rates: NewRateRepository(), Outbox: NewOutbox(nil, nil, "")}
}

func TestUnit_RollbackUndoesWritesAndDropsRecords(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)
	kept, err := f.Rates.Add(ctx, domainpricing.SeasonalRate{RoomID: "r1", Range: rng("2025-02-01", "2025-02-03"), FixedPrice: 90})
	require.NoError(t, err)

	unit, err := f.Begin(ctx, uow.TxOptions{})
	require.NoError(t, err)
	_, err = unit.Blocks().Add(ctx, domainavailability.Block{RoomID: "r1", Range: rng("2025-01-01", "2025-01-02"), UnitsBlocked: 1})
	require.NoError(t, err)
	_, err = unit.Rates().Remove(ctx, "r1", kept.ID)
	require.NoError(t, err)
	require.NoError(t, unit.Outbox().Add(ctx, appoutbox.EventRecord{ID: "e1", Name: "availability.block_added"}))
	require.NoError(t, unit.Rollback(ctx))

	blocks, err := f.Blocks.Blocks(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, blocks)
	rates, err := f.Rates.Rates(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []domainpricing.SeasonalRate{kept}, rates)
	assert.Equal(t, 0, f.Outbox.Pending())

	// a finished unit ignores a second call
	require.NoError(t, unit.Commit(ctx))
	assert.Equal(t, 0, f.Outbox.Pending())
}

func TestUnit_CommitReleasesRecords(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)

	unit, err := f.Begin(ctx, uow.TxOptions{})
	require.NoError(t, err)
	added, err := unit.Blocks().Add(ctx, domainavailability.Block{RoomID: "r1", Range: rng("2025-01-01", "2025-01-02"), UnitsBlocked: 1})
	require.NoError(t, err)
	require.NoError(t, unit.Outbox().Add(ctx, appoutbox.EventRecord{ID: "e1", Name: "availability.block_added"}))
	assert.Equal(t, 0, f.Outbox.Pending(), "records wait for commit")

	require.NoError(t, unit.Commit(ctx))
	require.NoError(t, unit.Rollback(ctx))
	assert.Equal(t, 1, f.Outbox.Pending())
	blocks, err := f.Blocks.Blocks(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []domainavailability.Block{added}, blocks)
}

func TestFactory_Misconfigured(t *testing.T) {
	_, err := Factory{Rooms: NewRoomRepository()}.Begin(context.Background(), uow.TxOptions{})
	assert.ErrorIs(t, err, ErrFactoryMisconfigured)
}
