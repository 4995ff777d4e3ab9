package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrates/internal/infra/storage/memory"
)

const sample = `{
  "properties": [
    {"id": "p1", "name": "Harbor Inn", "city": "Porto", "rooms": [
      {"id": "r1", "name": "Double", "base_price": 120, "total_units": 2, "total_guests": 2}
    ]}
  ],
  "blocks": [
    {"room_id": "r1", "range": {"check_in": "2025-03-10", "check_out": "2025-03-12"}, "units_blocked": 1, "reason": "paint"},
    {"room_id": "r1", "range": {"check_in": "2025-03-10", "check_out": "2025-03-12"}, "units_blocked": 5},
    {"room_id": "ghost", "range": {"check_in": "2025-03-10", "check_out": "2025-03-12"}, "units_blocked": 1}
  ],
  "rates": [
    {"room_id": "r1", "name": "spring", "range": {"check_in": "2025-03-01", "check_out": "2025-04-01"}, "fixed_price": 150}
  ]
}`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func stores() Stores {
	return Stores{Rooms: memory.NewRoomRepository(), Blocks: memory.NewBlockRepository(), Rates: memory.NewRateRepository()}
}

func TestSeed_SkipsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	f, err := Read(writeFile(t, sample))
	require.NoError(t, err)

	s := stores()
	require.NoError(t, Seed(ctx, s, f, nil))

	room, err := s.Rooms.Room(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(120), room.BasePrice)

	blocks, err := s.Blocks.Blocks(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "paint", blocks[0].Reason)

	rates, err := s.Rates.Rates(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, rates, 1)
}

func TestSeed_LeavesSeededStoreAlone(t *testing.T) {
	ctx := context.Background()
	f, err := Read(writeFile(t, sample))
	require.NoError(t, err)

	s := stores()
	require.NoError(t, Seed(ctx, s, f, nil))
	require.NoError(t, Seed(ctx, s, f, nil))

	blocks, err := s.Blocks.Blocks(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestRead_MissingAndBrokenFiles(t *testing.T) {
	f, err := Read(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Empty(t, f.Properties)

	_, err = Read(writeFile(t, `{"properties": [`))
	assert.Error(t, err)

	_, err = Read(writeFile(t, `{"blocks": [{"room_id": "r1", "range": {"check_in": "03/10/2025", "check_out": "2025-03-12"}}]}`))
	assert.Error(t, err)
}
