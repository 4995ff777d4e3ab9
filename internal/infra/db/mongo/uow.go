package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"

	appoutbox "roomrates/internal/app/outbox"
	"roomrates/internal/app/uow"
	domainavailability "roomrates/internal/domain/availability"
	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database or repositories")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
// Transactions need a replica set or sharded cluster.
type Factory struct {
	DB *mongo.Database

	RoomsRepo  rooms.Repository
	BlocksRepo domainavailability.Repository
	RatesRepo  domainpricing.Repository
	// Outbox must write through the session context, like the Mongo outbox store.
	Outbox appoutbox.Outbox
}

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil || f.RoomsRepo == nil || f.BlocksRepo == nil || f.RatesRepo == nil || f.Outbox == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(readconcern.Snapshot()).SetWriteConcern(f.DB.WriteConcern())
	if opts.ReadOnly {
		txnOpts = txnOpts.SetReadConcern(f.DB.ReadConcern())
	}
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session: session,
		rooms:   f.RoomsRepo,
		blocks:  f.BlocksRepo,
		rates:   f.RatesRepo,
		outbox:  f.Outbox,
	}, nil
}

type Unit struct {
	session mongo.Session

	rooms  rooms.Repository
	blocks domainavailability.Repository
	rates  domainpricing.Repository
	outbox appoutbox.Outbox
}

func (u *Unit) Rooms() rooms.Repository { return u.rooms }

func (u *Unit) Blocks() domainavailability.Repository { return u.blocks }

func (u *Unit) Rates() domainpricing.Repository { return u.rates }

func (u *Unit) Outbox() appoutbox.Outbox { return u.outbox }

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext puts the session in ctx so repository calls join the transaction.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}

var _ uow.UoWFactory = Factory{}
