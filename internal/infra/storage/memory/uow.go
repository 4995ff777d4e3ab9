package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	appoutbox "roomrates/internal/app/outbox"
	"roomrates/internal/app/uow"
	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	Rooms  rooms.Repository
	Blocks *BlockRepository
	Rates  *RateRepository
	Outbox *Outbox
}

// Begin starts a compensating unit. Writes land immediately and are undone on
// Rollback; outbox records are held back until Commit. Concurrent units are
// not isolated from each other.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.Rooms == nil || f.Blocks == nil || f.Rates == nil || f.Outbox == nil {
		return nil, ErrFactoryMisconfigured
	}
	u := &Unit{rooms: f.Rooms, target: f.Outbox}
	u.blocks = unitBlocks{BlockRepository: f.Blocks, unit: u}
	u.rates = unitRates{RateRepository: f.Rates, unit: u}
	u.staged = &stagedOutbox{}
	return u, nil
}

// Unit is a uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	rooms  rooms.Repository
	blocks unitBlocks
	rates  unitRates
	staged *stagedOutbox
	target *Outbox

	mu   sync.Mutex
	undo []func()
	done bool
}

func (u *Unit) Rooms() rooms.Repository { return u.rooms }

func (u *Unit) Blocks() domainavailability.Repository { return u.blocks }

func (u *Unit) Rates() domainpricing.Repository { return u.rates }

func (u *Unit) Outbox() appoutbox.Outbox { return u.staged }

func (u *Unit) Commit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.done {
		return nil
	}
	u.done = true
	u.undo = nil
	for _, rec := range u.staged.take() {
		if err := u.target.Add(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Rollback reverts block and rate writes in reverse order. Version bumps stay;
// a spare bump only misses the quote cache.
func (u *Unit) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.done {
		return nil
	}
	u.done = true
	for _, fn := range slices.Backward(u.undo) {
		fn()
	}
	u.undo = nil
	u.staged.take()
	return nil
}

func (u *Unit) onRollback(fn func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.undo = append(u.undo, fn)
}

type unitBlocks struct {
	*BlockRepository
	unit *Unit
}

func (b unitBlocks) Add(ctx context.Context, block domainavailability.Block) (domainavailability.Block, error) {
	stored, err := b.BlockRepository.Add(ctx, block)
	if err != nil {
		return stored, err
	}
	b.unit.onRollback(func() { b.discard(stored.ID) })
	return stored, nil
}

func (b unitBlocks) Remove(ctx context.Context, roomID rooms.RoomID, id domainavailability.BlockID) (domainavailability.Block, error) {
	removed, err := b.BlockRepository.Remove(ctx, roomID, id)
	if err != nil {
		return removed, err
	}
	b.unit.onRollback(func() { b.restore(removed) })
	return removed, nil
}

type unitRates struct {
	*RateRepository
	unit *Unit
}

func (r unitRates) Add(ctx context.Context, rate domainpricing.SeasonalRate) (domainpricing.SeasonalRate, error) {
	stored, err := r.RateRepository.Add(ctx, rate)
	if err != nil {
		return stored, err
	}
	r.unit.onRollback(func() { r.discard(stored.ID) })
	return stored, nil
}

func (r unitRates) Remove(ctx context.Context, roomID rooms.RoomID, id domainpricing.RateID) (domainpricing.SeasonalRate, error) {
	removed, err := r.RateRepository.Remove(ctx, roomID, id)
	if err != nil {
		return removed, err
	}
	r.unit.onRollback(func() { r.restore(removed) })
	return removed, nil
}

// stagedOutbox holds a unit's records until it commits.
type stagedOutbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
}

func (s *stagedOutbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *stagedOutbox) Flush(context.Context) error { return nil }

func (s *stagedOutbox) take() []appoutbox.EventRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.records
	s.records = nil
	return out
}

var _ uow.UoWFactory = Factory{}
