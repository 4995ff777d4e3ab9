package middleware

import (
	"context"

	"roomrates/internal/app/commands"
	"roomrates/internal/app/uow"
)

type TxOptionsProvider func(cmd commands.Command) uow.TxOptions

// Transaction runs every command inside a unit of work so that its writes and
// outbox records commit or roll back together.
func Transaction(factory uow.UoWFactory, optsProvider TxOptionsProvider) CommandMiddleware {
	if factory == nil {
		panic("middleware: uow factory required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			opts := uow.TxOptions{}
			if optsProvider != nil {
				opts = optsProvider(cmd)
			}
			var res any
			err := uow.Run(ctx, factory, opts, func(ctx context.Context) error {
				var err error
				res, err = nextFn(ctx, cmd)
				return err
			})
			if err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
