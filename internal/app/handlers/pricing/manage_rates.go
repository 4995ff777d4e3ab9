package pricing

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
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

const (
	addRateKey    = "pricing.add_rate"
	removeRateKey = "pricing.remove_rate"
	listRatesKey  = "pricing.list_rates"
)

type AddRateCommand struct {
	RoomID     string
	Name       string
	Range      daterange.DateRange
	FixedPrice int64
}

func (c AddRateCommand) Key() string { return addRateKey }

type RemoveRateCommand struct {
	RoomID string
	RateID int64
}

func (c RemoveRateCommand) Key() string { return removeRateKey }

type ListRatesQuery struct {
	RoomID string
}

func (q ListRatesQuery) Key() string { return listRatesKey }

type RateHandlers struct {
	Rooms   rooms.Repository
	Rates   domainpricing.Repository
	Units   uow.UoWFactory
	Encoder outbox.EventEncoder
	Now     func() time.Time
}

func (h *RateHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

func (h *RateHandlers) Add(ctx context.Context, cmd AddRateCommand) (dto.SeasonalRate, error) {
	var stored domainpricing.SeasonalRate
	err := support.WithinUnit(ctx, h.Units, func(ctx context.Context, unit uow.UnitOfWork) error {
		room, err := unit.Rooms().Room(ctx, rooms.RoomID(cmd.RoomID))
		if err != nil {
			return err
		}
		now := h.now()
		rate := domainpricing.SeasonalRate{
			RoomID:     room.ID,
			Name:       strings.TrimSpace(cmd.Name),
			Range:      cmd.Range,
			FixedPrice: cmd.FixedPrice,
			CreatedAt:  now,
		}
		if err := rate.Validate(room); err != nil {
			return err
		}
		if stored, err = unit.Rates().Add(ctx, rate); err != nil {
			return err
		}
		if err := unit.Rooms().BumpVersion(ctx, room.ID); err != nil {
			return err
		}
		return outbox.RecordDomainEvents(ctx, unit.Outbox(), h.Encoder, domainpricing.RateAddedEvent(stored, now))
	})
	if err != nil {
		return dto.SeasonalRate{}, err
	}
	return dto.MapRate(stored), nil
}

func (h *RateHandlers) Remove(ctx context.Context, cmd RemoveRateCommand) (dto.SeasonalRate, error) {
	var removed domainpricing.SeasonalRate
	err := support.WithinUnit(ctx, h.Units, func(ctx context.Context, unit uow.UnitOfWork) error {
		room, err := unit.Rooms().Room(ctx, rooms.RoomID(cmd.RoomID))
		if err != nil {
			return err
		}
		if removed, err = unit.Rates().Remove(ctx, room.ID, domainpricing.RateID(cmd.RateID)); err != nil {
			return err
		}
		if err := unit.Rooms().BumpVersion(ctx, room.ID); err != nil {
			return err
		}
		return outbox.RecordDomainEvents(ctx, unit.Outbox(), h.Encoder, domainpricing.RateRemovedEvent(removed, h.now()))
	})
	if err != nil {
		return dto.SeasonalRate{}, err
	}
	return dto.MapRate(removed), nil
}

func (h *RateHandlers) List(ctx context.Context, q ListRatesQuery) ([]dto.SeasonalRate, error) {
	room, err := h.Rooms.Room(ctx, rooms.RoomID(q.RoomID))
	if err != nil {
		return nil, err
	}
	rates, err := h.Rates.Rates(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	return dto.MapRates(rates), nil
}

func (h *RateHandlers) Register(cmds *commands.InMemoryBus, qs *queries.InMemoryBus) {
	commands.RegisterHandler[AddRateCommand, dto.SeasonalRate](cmds, commands.HandlerFunc[AddRateCommand, dto.SeasonalRate](h.Add))
	commands.RegisterHandler[RemoveRateCommand, dto.SeasonalRate](cmds, commands.HandlerFunc[RemoveRateCommand, dto.SeasonalRate](h.Remove))
	queries.RegisterHandler[ListRatesQuery, []dto.SeasonalRate](qs, queries.HandlerFunc[ListRatesQuery, []dto.SeasonalRate](h.List))
}
