package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrates/internal/app/commands"
	"roomrates/internal/app/outbox"
	"roomrates/internal/app/queries"
	"roomrates/internal/app/uow"
	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
)

type pingCommand struct{ fail bool }

func (pingCommand) Key() string { return "test.ping" }

type pingQuery struct{}

func (pingQuery) Key() string { return "test.ping_query" }

type countingOutbox struct {
	added, flushed int
}

func (o *countingOutbox) Add(ctx context.Context, rec outbox.EventRecord) error {
	o.added++
	return nil
}

func (o *countingOutbox) Flush(ctx context.Context) error {
	o.flushed++
	return nil
}

func commandBus() *commands.InMemoryBus {
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler[pingCommand, string](bus, commands.HandlerFunc[pingCommand, string](func(ctx context.Context, cmd pingCommand) (string, error) {
		if cmd.fail {
			return "", errors.New("boom")
		}
		return "pong", nil
	}))
	return bus
}

func TestOutboxFlush_OnlyAfterSuccess(t *testing.T) {
	box := &countingOutbox{}
	bus := ChainCommands(commandBus(), OutboxFlush(box))

	res, err := commands.Dispatch[pingCommand, string](context.Background(), bus, pingCommand{})
	require.NoError(t, err)
	assert.Equal(t, "pong", res)
	assert.Equal(t, 1, box.flushed)

	_, err = commands.Dispatch[pingCommand, string](context.Background(), bus, pingCommand{fail: true})
	assert.Error(t, err)
	assert.Equal(t, 1, box.flushed)
}

func TestChainCommands_Order(t *testing.T) {
	var trace []string
	mark := func(name string) CommandMiddleware {
		return func(next commands.Bus) commands.Bus {
			nextFn := wrapCommand(next)
			return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
				trace = append(trace, name)
				return nextFn(ctx, cmd)
			})
		}
	}
	bus := ChainCommands(commandBus(), mark("outer"), nil, mark("inner"))
	_, err := bus.Dispatch(context.Background(), pingCommand{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, trace)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	bus := ChainCommands(commandBus(), Logging(logger))

	_, err := bus.Dispatch(context.Background(), pingCommand{fail: true})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "key=test.ping")

	qbus := queries.NewInMemoryBus()
	queries.RegisterHandler[pingQuery, int](qbus, queries.HandlerFunc[pingQuery, int](func(ctx context.Context, q pingQuery) (int, error) {
		return 7, nil
	}))
	buf.Reset()
	got, err := queries.Ask[pingQuery, int](context.Background(), ChainQueries(qbus, QueryLogging(logger)), pingQuery{})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Contains(t, buf.String(), "bus message handled")
}

func TestUnknownHandler(t *testing.T) {
	_, err := queries.NewInMemoryBus().Ask(context.Background(), pingQuery{})
	assert.ErrorIs(t, err, queries.ErrHandlerNotFound)

	_, err = commands.NewInMemoryBus().Dispatch(context.Background(), pingCommand{})
	assert.ErrorIs(t, err, commands.ErrHandlerNotFound)
}

func TestRegisterHandler_DuplicatePanics(t *testing.T) {
	bus := commandBus()
	assert.Panics(t, func() {
		commands.RegisterHandler[pingCommand, string](bus, commands.HandlerFunc[pingCommand, string](func(ctx context.Context, cmd pingCommand) (string, error) {
			return "", nil
		}))
	})
}

type recordingUnit struct {
	committed, rolledBack bool
	commitErr             error
}

func (u *recordingUnit) Rooms() rooms.Repository               { return nil }
func (u *recordingUnit) Blocks() domainavailability.Repository { return nil }
func (u *recordingUnit) Rates() domainpricing.Repository       { return nil }
func (u *recordingUnit) Outbox() outbox.Outbox                 { return nil }

func (u *recordingUnit) Commit(ctx context.Context) error {
	u.committed = true
	return u.commitErr
}

func (u *recordingUnit) Rollback(ctx context.Context) error {
	u.rolledBack = true
	return nil
}

type recordingFactory struct {
	units []*recordingUnit
	next  *recordingUnit
}

func (f *recordingFactory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	unit := f.next
	if unit == nil {
		unit = &recordingUnit{}
	}
	f.next = nil
	f.units = append(f.units, unit)
	return unit, nil
}

func TestTransaction_CommitsOrRollsBack(t *testing.T) {
	factory := &recordingFactory{}
	var seen uow.UnitOfWork
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler[pingCommand, string](bus, commands.HandlerFunc[pingCommand, string](func(ctx context.Context, cmd pingCommand) (string, error) {
		seen, _ = uow.FromContext(ctx)
		if cmd.fail {
			return "", errors.New("boom")
		}
		return "pong", nil
	}))
	chained := ChainCommands(bus, Transaction(factory, nil))

	res, err := commands.Dispatch[pingCommand, string](context.Background(), chained, pingCommand{})
	require.NoError(t, err)
	assert.Equal(t, "pong", res)
	require.Len(t, factory.units, 1)
	assert.Same(t, factory.units[0], seen)
	assert.True(t, factory.units[0].committed)
	assert.False(t, factory.units[0].rolledBack)

	_, err = commands.Dispatch[pingCommand, string](context.Background(), chained, pingCommand{fail: true})
	assert.EqualError(t, err, "boom")
	assert.False(t, factory.units[1].committed)
	assert.True(t, factory.units[1].rolledBack)

	factory.next = &recordingUnit{commitErr: errors.New("commit failed")}
	_, err = commands.Dispatch[pingCommand, string](context.Background(), chained, pingCommand{})
	assert.EqualError(t, err, "commit failed")
}

func TestTransaction_RequiresFactory(t *testing.T) {
	assert.Panics(t, func() { Transaction(nil, nil) })
}
