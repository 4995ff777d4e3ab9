package support

import (
	"context"

	"roomrates/internal/app/uow"
)

// WithinUnit runs fn in the unit carried by ctx. Without one it begins a unit
// from factory that commits when fn succeeds.
func WithinUnit(ctx context.Context, factory uow.UoWFactory, fn func(ctx context.Context, unit uow.UnitOfWork) error) error {
	if unit, ok := uow.FromContext(ctx); ok {
		return fn(ctx, unit)
	}
	if factory == nil {
		return uow.ErrUnitOfWorkMissing
	}
	return uow.Run(ctx, factory, uow.TxOptions{}, func(ctx context.Context) error {
		unit, ok := uow.FromContext(ctx)
		if !ok {
			return uow.ErrUnitOfWorkMissing
		}
		return fn(ctx, unit)
	})
}
