package dto

import (
	"roomrates/internal/domain/listings"
)

// PropertyAvailability is the property-detail view of a stay.
type PropertyAvailability struct {
	PropertyID string             `json:"property_id"`
	Name       string             `json:"name"`
	City       string             `json:"city,omitempty"`
	Rooms      []RoomAvailability `json:"rooms"`
	// LowestPrice is null when no room can host the stay.
	LowestPrice *int64 `json:"lowest_price"`
}

type PropertyCard struct {
	PropertyID     string `json:"property_id"`
	Name           string `json:"name"`
	City           string `json:"city,omitempty"`
	RoomCount      int    `json:"room_count"`
	AvailableRooms int    `json:"available_rooms"`
	LowestPrice    *int64 `json:"lowest_price"`
}

type PropertyCatalog struct {
	Items  []PropertyCard `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Sort   string         `json:"sort"`
	Order  string         `json:"order"`
}

func MapPropertyAvailability(s listings.Summary, guests int) PropertyAvailability {
	out := PropertyAvailability{
		PropertyID:  string(s.Property.ID),
		Name:        s.Property.Name,
		City:        s.Property.City,
		Rooms:       make([]RoomAvailability, 0, len(s.Results)),
		LowestPrice: lowestPrice(s),
	}
	for _, res := range s.Results {
		out.Rooms = append(out.Rooms, MapRoomAvailability(res, guests))
	}
	return out
}

func MapPropertyCard(s listings.Summary) PropertyCard {
	card := PropertyCard{
		PropertyID:  string(s.Property.ID),
		Name:        s.Property.Name,
		City:        s.Property.City,
		RoomCount:   len(s.Property.Rooms),
		LowestPrice: lowestPrice(s),
	}
	for _, res := range s.Results {
		if res.IsAvailable {
			card.AvailableRooms++
		}
	}
	return card
}

func lowestPrice(s listings.Summary) *int64 {
	if !s.Bookable {
		return nil
	}
	price := s.LowestPrice
	return &price
}
