package rooms

import (
	"context"
	"errors"
)

var (
	ErrRoomNotFound     = errors.New("rooms: room not found")
	ErrPropertyNotFound = errors.New("rooms: property not found")
)

type RoomID string

type PropertyID string

// Room is one room type of a property: TotalUnits identical units sharing one
// nightly BasePrice, each holding up to TotalGuests guests.
type Room struct {
	ID          RoomID     `json:"id"`
	PropertyID  PropertyID `json:"property_id"`
	Name        string     `json:"name"`
	BasePrice   int64      `json:"base_price"`
	TotalUnits  int        `json:"total_units"`
	TotalGuests int        `json:"total_guests"`
	// Version changes whenever the room's blocks or seasonal rates change.
	Version int64 `json:"version"`
}

type Property struct {
	ID    PropertyID `json:"id"`
	Name  string     `json:"name"`
	City  string     `json:"city,omitempty"`
	Rooms []Room     `json:"rooms"`
}

// RoomIDs lists the ids of every room of the property.
func (p Property) RoomIDs() []RoomID {
	ids := make([]RoomID, 0, len(p.Rooms))
	for _, r := range p.Rooms {
		ids = append(ids, r.ID)
	}
	return ids
}

type Repository interface {
	Property(ctx context.Context, id PropertyID) (Property, error)
	Properties(ctx context.Context) ([]Property, error)
	Room(ctx context.Context, id RoomID) (Room, error)
	SaveProperty(ctx context.Context, p Property) error
	// BumpVersion marks the room's availability snapshot as changed.
	BumpVersion(ctx context.Context, id RoomID) error
}
