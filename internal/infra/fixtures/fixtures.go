package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

type File struct {
	Properties []propertyFixture `json:"properties"`
	Blocks     []blockFixture    `json:"blocks"`
	Rates      []rateFixture     `json:"rates"`
}

type propertyFixture struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	City  string        `json:"city"`
	Rooms []roomFixture `json:"rooms"`
}

type roomFixture struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BasePrice   int64  `json:"base_price"`
	TotalUnits  int    `json:"total_units"`
	TotalGuests int    `json:"total_guests"`
}

type blockFixture struct {
	RoomID       string              `json:"room_id"`
	Range        daterange.DateRange `json:"range"`
	UnitsBlocked int                 `json:"units_blocked"`
	Reason       string              `json:"reason"`
}

type rateFixture struct {
	RoomID     string              `json:"room_id"`
	Name       string              `json:"name"`
	Range      daterange.DateRange `json:"range"`
	FixedPrice int64               `json:"fixed_price"`
}

// Read decodes a fixtures file. A missing or empty file yields an empty File.
func Read(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		return File{}, nil
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decode fixtures: %w", err)
	}
	return f, nil
}

type Stores struct {
	Rooms  rooms.Repository
	Blocks domainavailability.Repository
	Rates  domainpricing.Repository
}

// Seed loads f into empty stores. Stores that already hold properties are
// left alone so restarts against a database do not duplicate blocks.
func Seed(ctx context.Context, s Stores, f File, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	existing, err := s.Rooms.Properties(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("store already seeded, skipping fixtures", "properties", len(existing))
		return nil
	}

	known := map[rooms.RoomID]rooms.Room{}
	for _, fx := range f.Properties {
		p := rooms.Property{ID: rooms.PropertyID(fx.ID), Name: fx.Name, City: fx.City}
		for _, r := range fx.Rooms {
			p.Rooms = append(p.Rooms, rooms.Room{
				ID:          rooms.RoomID(r.ID),
				PropertyID:  p.ID,
				Name:        r.Name,
				BasePrice:   r.BasePrice,
				TotalUnits:  r.TotalUnits,
				TotalGuests: r.TotalGuests,
			})
		}
		if err := s.Rooms.SaveProperty(ctx, p); err != nil {
			logger.Error("cannot store fixture property", "property_id", fx.ID, "error", err)
			continue
		}
		for _, r := range p.Rooms {
			known[r.ID] = r
		}
		logger.Info("property fixture imported", "property_id", p.ID, "rooms", len(p.Rooms))
	}

	now := time.Now().UTC()
	for _, fx := range f.Blocks {
		room, ok := known[rooms.RoomID(fx.RoomID)]
		if !ok {
			logger.Error("fixture block for unknown room", "room_id", fx.RoomID)
			continue
		}
		b := domainavailability.Block{RoomID: room.ID, Range: fx.Range, UnitsBlocked: fx.UnitsBlocked, Reason: fx.Reason, CreatedAt: now}
		if err := b.Validate(room); err != nil {
			logger.Error("fixture block invalid", "room_id", fx.RoomID, "error", err)
			continue
		}
		if _, err := s.Blocks.Add(ctx, b); err != nil {
			return err
		}
	}
	for _, fx := range f.Rates {
		room, ok := known[rooms.RoomID(fx.RoomID)]
		if !ok {
			logger.Error("fixture rate for unknown room", "room_id", fx.RoomID)
			continue
		}
		r := domainpricing.SeasonalRate{RoomID: room.ID, Name: fx.Name, Range: fx.Range, FixedPrice: fx.FixedPrice, CreatedAt: now}
		if err := r.Validate(room); err != nil {
			logger.Error("fixture rate invalid", "room_id", fx.RoomID, "error", err)
			continue
		}
		if _, err := s.Rates.Add(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// DefaultPath returns the first fixtures file found in the usual locations.
func DefaultPath() string {
	candidates := []string{
		filepath.Join("data", "fixtures.json"),
		filepath.Join("..", "..", "data", "fixtures.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}
