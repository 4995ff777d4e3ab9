package mongo

import (
	"fmt"
	"time"

	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
	"roomrates/internal/domain/shared/daterange"
)

// Dates are stored as YYYY-MM-DD strings so no zone conversion can move a day.
type rangeDocument struct {
	CheckIn  string `bson:"check_in"`
	CheckOut string `bson:"check_out"`
}

func newRangeDocument(r daterange.DateRange) rangeDocument {
	return rangeDocument{CheckIn: r.CheckIn.String(), CheckOut: r.CheckOut.String()}
}

func (d rangeDocument) toRange() (daterange.DateRange, error) {
	in, err := daterange.ParseDate(d.CheckIn)
	if err != nil {
		return daterange.DateRange{}, err
	}
	out, err := daterange.ParseDate(d.CheckOut)
	if err != nil {
		return daterange.DateRange{}, err
	}
	return daterange.DateRange{CheckIn: in, CheckOut: out}, nil
}

type propertyDocument struct {
	ID    string         `bson:"_id"`
	Name  string         `bson:"name"`
	City  string         `bson:"city,omitempty"`
	Rooms []roomDocument `bson:"rooms"`
}

type roomDocument struct {
	ID          string `bson:"id"`
	Name        string `bson:"name"`
	BasePrice   int64  `bson:"base_price"`
	TotalUnits  int    `bson:"total_units"`
	TotalGuests int    `bson:"total_guests"`
	Version     int64  `bson:"version"`
}

func newPropertyDocument(p rooms.Property) propertyDocument {
	doc := propertyDocument{ID: string(p.ID), Name: p.Name, City: p.City, Rooms: make([]roomDocument, 0, len(p.Rooms))}
	for _, r := range p.Rooms {
		doc.Rooms = append(doc.Rooms, roomDocument{
			ID:          string(r.ID),
			Name:        r.Name,
			BasePrice:   r.BasePrice,
			TotalUnits:  r.TotalUnits,
			TotalGuests: r.TotalGuests,
			Version:     r.Version,
		})
	}
	return doc
}

func (d propertyDocument) toProperty() rooms.Property {
	p := rooms.Property{ID: rooms.PropertyID(d.ID), Name: d.Name, City: d.City, Rooms: make([]rooms.Room, 0, len(d.Rooms))}
	for _, r := range d.Rooms {
		p.Rooms = append(p.Rooms, rooms.Room{
			ID:          rooms.RoomID(r.ID),
			PropertyID:  p.ID,
			Name:        r.Name,
			BasePrice:   r.BasePrice,
			TotalUnits:  r.TotalUnits,
			TotalGuests: r.TotalGuests,
			Version:     r.Version,
		})
	}
	return p
}

type blockDocument struct {
	ID           int64         `bson:"_id"`
	RoomID       string        `bson:"room_id"`
	Range        rangeDocument `bson:"range"`
	UnitsBlocked int           `bson:"units_blocked"`
	Reason       string        `bson:"reason,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
}

func newBlockDocument(b domainavailability.Block) blockDocument {
	return blockDocument{
		ID:           int64(b.ID),
		RoomID:       string(b.RoomID),
		Range:        newRangeDocument(b.Range),
		UnitsBlocked: b.UnitsBlocked,
		Reason:       b.Reason,
		CreatedAt:    b.CreatedAt.UTC(),
	}
}

func (d blockDocument) toBlock() (domainavailability.Block, error) {
	r, err := d.Range.toRange()
	if err != nil {
		return domainavailability.Block{}, fmt.Errorf("block %d: %w", d.ID, err)
	}
	return domainavailability.Block{
		ID:           domainavailability.BlockID(d.ID),
		RoomID:       rooms.RoomID(d.RoomID),
		Range:        r,
		UnitsBlocked: d.UnitsBlocked,
		Reason:       d.Reason,
		CreatedAt:    d.CreatedAt.UTC(),
	}, nil
}

type rateDocument struct {
	ID         int64         `bson:"_id"`
	RoomID     string        `bson:"room_id"`
	Name       string        `bson:"name"`
	Range      rangeDocument `bson:"range"`
	FixedPrice int64         `bson:"fixed_price"`
	CreatedAt  time.Time     `bson:"created_at"`
}

func newRateDocument(r domainpricing.SeasonalRate) rateDocument {
	return rateDocument{
		ID:         int64(r.ID),
		RoomID:     string(r.RoomID),
		Name:       r.Name,
		Range:      newRangeDocument(r.Range),
		FixedPrice: r.FixedPrice,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func (d rateDocument) toRate() (domainpricing.SeasonalRate, error) {
	r, err := d.Range.toRange()
	if err != nil {
		return domainpricing.SeasonalRate{}, fmt.Errorf("rate %d: %w", d.ID, err)
	}
	return domainpricing.SeasonalRate{
		ID:         domainpricing.RateID(d.ID),
		RoomID:     rooms.RoomID(d.RoomID),
		Name:       d.Name,
		Range:      r,
		FixedPrice: d.FixedPrice,
		CreatedAt:  d.CreatedAt.UTC(),
	}, nil
}

func roomIDStrings(ids []rooms.RoomID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
