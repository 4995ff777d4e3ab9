package uow

import (
	"context"

	"roomrates/internal/app/outbox"
	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
)

// UnitOfWork coordinates repositories inside a transaction boundary. A block
// or rate write, its room version bump and its outbox record commit together.
type UnitOfWork interface {
	Rooms() rooms.Repository
	Blocks() domainavailability.Repository
	Rates() domainpricing.Repository
	Outbox() outbox.Outbox

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}

// Run begins a unit, runs fn with the unit in its context and commits when fn
// succeeds. Any error rolls the unit back.
func Run(ctx context.Context, factory UoWFactory, opts TxOptions, fn func(ctx context.Context) error) error {
	unit, err := factory.Begin(ctx, opts)
	if err != nil {
		return err
	}
	execCtx := ctx
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		execCtx = injector.InjectContext(ctx)
	}
	execCtx = ContextWithUnitOfWork(execCtx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(execCtx)
		}
	}()

	if err := fn(execCtx); err != nil {
		return err
	}
	if err := unit.Commit(execCtx); err != nil {
		return err
	}
	committed = true
	return nil
}
