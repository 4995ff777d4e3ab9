package listings

import (
	"sort"
	"strings"

	"roomrates/internal/domain/quote"
	"roomrates/internal/domain/rooms"
)

// SortField defines a supported ordering key.
type SortField string

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortByName  SortField = "name"
	SortByPrice SortField = "price"

	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// NormalizeSort maps free-form input to a supported field and order,
// defaulting to price ascending.
func NormalizeSort(field, order string) (SortField, SortOrder) {
	f := SortField(strings.TrimSpace(strings.ToLower(field)))
	switch f {
	case SortByName, SortByPrice:
	default:
		f = SortByPrice
	}
	o := SortOrder(strings.TrimSpace(strings.ToLower(order)))
	if o != Desc {
		o = Asc
	}
	return f, o
}

// Summary is one property evaluated against a stay.
type Summary struct {
	Property rooms.Property
	Results  []quote.Result
	// LowestPrice is the smallest nightly-equivalent price among available
	// rooms; meaningful only when Bookable is true.
	LowestPrice int64
	Bookable    bool
}

// Aggregator applies one engine across properties. The query's RoomID is
// ignored; every room of a property is evaluated.
type Aggregator struct {
	Engine quote.Engine
}

func (a Aggregator) Summarize(p rooms.Property, q quote.Query) (Summary, error) {
	if err := q.Range.Validate(); err != nil {
		return Summary{}, quote.ErrInvalidRange
	}
	s := Summary{Property: p, Results: make([]quote.Result, 0, len(p.Rooms))}
	for _, room := range p.Rooms {
		q.RoomID = room.ID
		res, err := a.Engine.Evaluate(q, room)
		if err != nil {
			return Summary{}, err
		}
		s.Results = append(s.Results, res)
		if !res.IsAvailable {
			continue
		}
		if price := res.NightlyEquivalent(); !s.Bookable || price < s.LowestPrice {
			s.LowestPrice = price
			s.Bookable = true
		}
	}
	return s, nil
}

func (a Aggregator) Summaries(ps []rooms.Property, q quote.Query) ([]Summary, error) {
	if err := q.Range.Validate(); err != nil {
		return nil, quote.ErrInvalidRange
	}
	out := make([]Summary, 0, len(ps))
	for _, p := range ps {
		s, err := a.Summarize(p, q)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// LowestAvailablePrice returns the cheapest nightly-equivalent price among the
// property's available rooms. ok is false when no room qualifies.
func (a Aggregator) LowestAvailablePrice(p rooms.Property, q quote.Query) (price int64, ok bool, err error) {
	s, err := a.Summarize(p, q)
	if err != nil {
		return 0, false, err
	}
	return s.LowestPrice, s.Bookable, nil
}

// FilterAvailableProperties keeps properties with at least one available room,
// preserving input order.
func (a Aggregator) FilterAvailableProperties(ps []rooms.Property, q quote.Query) ([]rooms.Property, error) {
	summaries, err := a.Summaries(ps, q)
	if err != nil {
		return nil, err
	}
	out := make([]rooms.Property, 0, len(summaries))
	for _, s := range OnlyBookable(summaries) {
		out = append(out, s.Property)
	}
	return out, nil
}

// SortBy orders properties by name or by lowest available price for q.
func (a Aggregator) SortBy(ps []rooms.Property, q quote.Query, field SortField, order SortOrder) ([]rooms.Property, error) {
	summaries, err := a.Summaries(ps, q)
	if err != nil {
		return nil, err
	}
	SortSummaries(summaries, field, order)
	out := make([]rooms.Property, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Property)
	}
	return out, nil
}

func OnlyBookable(ss []Summary) []Summary {
	out := make([]Summary, 0, len(ss))
	for _, s := range ss {
		if s.Bookable {
			out = append(out, s)
		}
	}
	return out
}

// SortSummaries sorts in place and is stable. With SortByPrice, summaries
// without a bookable room always go last, whatever the order.
func SortSummaries(ss []Summary, field SortField, order SortOrder) {
	desc := order == Desc
	sort.SliceStable(ss, func(i, j int) bool {
		a, b := ss[i], ss[j]
		if field == SortByName {
			an, bn := strings.ToLower(a.Property.Name), strings.ToLower(b.Property.Name)
			if desc {
				return an > bn
			}
			return an < bn
		}
		if a.Bookable != b.Bookable {
			return a.Bookable
		}
		if !a.Bookable {
			return false
		}
		if desc {
			return a.LowestPrice > b.LowestPrice
		}
		return a.LowestPrice < b.LowestPrice
	})
}
