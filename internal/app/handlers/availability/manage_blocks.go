package availability

import (
	"context"
	"strings"
	"time"

	"roomrates/internal/app/commands"
	"roomrates/internal/app/dto"
	"roomrates/internal/app/handlers/support"
	"roomrates/internal/app/outbox"
	"roomrates/internal/app/queries"
	"roomrates/internal/app/uow"
	domainavailability "roomrates/internal/domain/availability"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

const (
	addBlockKey    = "availability.add_block"
	removeBlockKey = "availability.remove_block"
	listBlocksKey  = "availability.list_blocks"
)

type AddBlockCommand struct {
	RoomID       string
	Range        daterange.DateRange
	UnitsBlocked int
	Reason       string
}

func (c AddBlockCommand) Key() string { return addBlockKey }

type RemoveBlockCommand struct {
	RoomID  string
	BlockID int64
}

func (c RemoveBlockCommand) Key() string { return removeBlockKey }

type ListBlocksQuery struct {
	RoomID string
}

func (q ListBlocksQuery) Key() string { return listBlocksKey }

// BlockHandlers implements the maintenance write path and its listing. Writes
// go through the unit of work in the context, or a new one from Units.
type BlockHandlers struct {
	Rooms   rooms.Repository
	Blocks  domainavailability.Repository
	Units   uow.UoWFactory
	Encoder outbox.EventEncoder
	Now     func() time.Time
}

func (h *BlockHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

func (h *BlockHandlers) Add(ctx context.Context, cmd AddBlockCommand) (dto.Block, error) {
	var stored domainavailability.Block
	err := support.WithinUnit(ctx, h.Units, func(ctx context.Context, unit uow.UnitOfWork) error {
		room, err := unit.Rooms().Room(ctx, rooms.RoomID(cmd.RoomID))
		if err != nil {
			return err
		}
		now := h.now()
		block := domainavailability.Block{
			RoomID:       room.ID,
			Range:        cmd.Range,
			UnitsBlocked: cmd.UnitsBlocked,
			Reason:       strings.TrimSpace(cmd.Reason),
			CreatedAt:    now,
		}
		if err := block.Validate(room); err != nil {
			return err
		}
		if stored, err = unit.Blocks().Add(ctx, block); err != nil {
			return err
		}
		if err := unit.Rooms().BumpVersion(ctx, room.ID); err != nil {
			return err
		}
		return outbox.RecordDomainEvents(ctx, unit.Outbox(), h.Encoder, domainavailability.BlockAddedEvent(stored, now))
	})
	if err != nil {
		return dto.Block{}, err
	}
	return dto.MapBlock(stored), nil
}

func (h *BlockHandlers) Remove(ctx context.Context, cmd RemoveBlockCommand) (dto.Block, error) {
	var removed domainavailability.Block
	err := support.WithinUnit(ctx, h.Units, func(ctx context.Context, unit uow.UnitOfWork) error {
		room, err := unit.Rooms().Room(ctx, rooms.RoomID(cmd.RoomID))
		if err != nil {
			return err
		}
		if removed, err = unit.Blocks().Remove(ctx, room.ID, domainavailability.BlockID(cmd.BlockID)); err != nil {
			return err
		}
		if err := unit.Rooms().BumpVersion(ctx, room.ID); err != nil {
			return err
		}
		return outbox.RecordDomainEvents(ctx, unit.Outbox(), h.Encoder, domainavailability.BlockRemovedEvent(removed, h.now()))
	})
	if err != nil {
		return dto.Block{}, err
	}
	return dto.MapBlock(removed), nil
}

func (h *BlockHandlers) List(ctx context.Context, q ListBlocksQuery) ([]dto.Block, error) {
	room, err := h.Rooms.Room(ctx, rooms.RoomID(q.RoomID))
	if err != nil {
		return nil, err
	}
	blocks, err := h.Blocks.Blocks(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	return dto.MapBlocks(blocks), nil
}

// Register wires the block handlers onto the buses.
func (h *BlockHandlers) Register(cmds *commands.InMemoryBus, qs *queries.InMemoryBus) {
	commands.RegisterHandler[AddBlockCommand, dto.Block](cmds, commands.HandlerFunc[AddBlockCommand, dto.Block](h.Add))
	commands.RegisterHandler[RemoveBlockCommand, dto.Block](cmds, commands.HandlerFunc[RemoveBlockCommand, dto.Block](h.Remove))
	queries.RegisterHandler[ListBlocksQuery, []dto.Block](qs, queries.HandlerFunc[ListBlocksQuery, []dto.Block](h.List))
}
