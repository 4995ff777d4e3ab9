package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
)

// RoomRepository keeps properties and their rooms in memory.
type RoomRepository struct {
	mu         sync.RWMutex
	properties map[rooms.PropertyID]rooms.Property
	order      []rooms.PropertyID
	roomIndex  map[rooms.RoomID]rooms.PropertyID
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{
		properties: make(map[rooms.PropertyID]rooms.Property),
		roomIndex:  make(map[rooms.RoomID]rooms.PropertyID),
	}
}

func (r *RoomRepository) Property(ctx context.Context, id rooms.PropertyID) (rooms.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.properties[id]
	if !ok {
		return rooms.Property{}, rooms.ErrPropertyNotFound
	}
	return cloneProperty(p), nil
}

// Properties returns every property in insertion order.
func (r *RoomRepository) Properties(ctx context.Context) ([]rooms.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]rooms.Property, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneProperty(r.properties[id]))
	}
	return out, nil
}

func (r *RoomRepository) Room(ctx context.Context, id rooms.RoomID) (rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pid, ok := r.roomIndex[id]
	if !ok {
		return rooms.Room{}, rooms.ErrRoomNotFound
	}
	for _, room := range r.properties[pid].Rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return rooms.Room{}, rooms.ErrRoomNotFound
}

// SaveProperty inserts or replaces a property and re-indexes its rooms.
func (r *RoomRepository) SaveProperty(ctx context.Context, p rooms.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.properties[p.ID]; ok {
		for _, room := range old.Rooms {
			delete(r.roomIndex, room.ID)
		}
	} else {
		r.order = append(r.order, p.ID)
	}
	p = cloneProperty(p)
	for i := range p.Rooms {
		p.Rooms[i].PropertyID = p.ID
		r.roomIndex[p.Rooms[i].ID] = p.ID
	}
	r.properties[p.ID] = p
	return nil
}

func (r *RoomRepository) BumpVersion(ctx context.Context, id rooms.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pid, ok := r.roomIndex[id]
	if !ok {
		return rooms.ErrRoomNotFound
	}
	p := r.properties[pid]
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			p.Rooms[i].Version++
			return nil
		}
	}
	return rooms.ErrRoomNotFound
}

func cloneProperty(p rooms.Property) rooms.Property {
	p.Rooms = slices.Clone(p.Rooms)
	return p
}

// BlockRepository stores non-availability blocks with sequential ids.
type BlockRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[domainavailability.BlockID]domainavailability.Block
}

func NewBlockRepository() *BlockRepository {
	return &BlockRepository{items: make(map[domainavailability.BlockID]domainavailability.Block)}
}

func (r *BlockRepository) Blocks(ctx context.Context, roomIDs ...rooms.RoomID) ([]domainavailability.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domainavailability.Block
	for _, b := range r.items {
		if slices.Contains(roomIDs, b.RoomID) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b domainavailability.Block) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *BlockRepository) Add(ctx context.Context, b domainavailability.Block) (domainavailability.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	b.ID = domainavailability.BlockID(r.seq)
	r.items[b.ID] = b
	return b, nil
}

func (r *BlockRepository) Remove(ctx context.Context, roomID rooms.RoomID, id domainavailability.BlockID) (domainavailability.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok || b.RoomID != roomID {
		return domainavailability.Block{}, domainavailability.ErrBlockNotFound
	}
	delete(r.items, id)
	return b, nil
}

// restore puts a removed block back under its original id.
func (r *BlockRepository) restore(b domainavailability.Block) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = b
}

func (r *BlockRepository) discard(id domainavailability.BlockID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// RateRepository stores seasonal rates with sequential ids.
type RateRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[domainpricing.RateID]domainpricing.SeasonalRate
}

func NewRateRepository() *RateRepository {
	return &RateRepository{items: make(map[domainpricing.RateID]domainpricing.SeasonalRate)}
}

func (r *RateRepository) Rates(ctx context.Context, roomIDs ...rooms.RoomID) ([]domainpricing.SeasonalRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domainpricing.SeasonalRate
	for _, rate := range r.items {
		if slices.Contains(roomIDs, rate.RoomID) {
			out = append(out, rate)
		}
	}
	slices.SortFunc(out, func(a, b domainpricing.SeasonalRate) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *RateRepository) Add(ctx context.Context, rate domainpricing.SeasonalRate) (domainpricing.SeasonalRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rate.ID = domainpricing.RateID(r.seq)
	r.items[rate.ID] = rate
	return rate, nil
}

func (r *RateRepository) Remove(ctx context.Context, roomID rooms.RoomID, id domainpricing.RateID) (domainpricing.SeasonalRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate, ok := r.items[id]
	if !ok || rate.RoomID != roomID {
		return domainpricing.SeasonalRate{}, domainpricing.ErrRateNotFound
	}
	delete(r.items, id)
	return rate, nil
}

func (r *RateRepository) restore(rate domainpricing.SeasonalRate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rate.ID] = rate
}

func (r *RateRepository) discard(id domainpricing.RateID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

var (
	_ rooms.Repository              = (*RoomRepository)(nil)
	_ domainavailability.Repository = (*BlockRepository)(nil)
	_ domainpricing.Repository      = (*RateRepository)(nil)
)
