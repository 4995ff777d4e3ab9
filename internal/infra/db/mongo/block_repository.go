package mongo

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "roomrates/internal/domain/availability"
	"roomrates/internal/domain/rooms"
)

type BlockRepository struct {
	col      *mongo.Collection
	counters *Counters
	// Logger reports stored blocks that cannot be decoded; they are skipped.
	Logger *slog.Logger
}

func NewBlockRepository(db *mongo.Database, counters *Counters) *BlockRepository {
	return &BlockRepository{col: db.Collection(blocksCollection), counters: counters}
}

func (r *BlockRepository) Blocks(ctx context.Context, roomIDs ...rooms.RoomID) ([]domainavailability.Block, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"room_id": bson.M{"$in": roomIDStrings(roomIDs)}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []domainavailability.Block
	for cur.Next(ctx) {
		var doc blockDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		b, err := doc.toBlock()
		if err != nil {
			if r.Logger != nil {
				r.Logger.WarnContext(ctx, "skipping unreadable block", "room_id", doc.RoomID, "error", err)
			}
			continue
		}
		out = append(out, b)
	}
	return out, cur.Err()
}

func (r *BlockRepository) Add(ctx context.Context, b domainavailability.Block) (domainavailability.Block, error) {
	id, err := r.counters.Next(ctx, blocksCollection)
	if err != nil {
		return domainavailability.Block{}, err
	}
	b.ID = domainavailability.BlockID(id)
	if _, err := r.col.InsertOne(ctx, newBlockDocument(b)); err != nil {
		return domainavailability.Block{}, err
	}
	return b, nil
}

func (r *BlockRepository) Remove(ctx context.Context, roomID rooms.RoomID, id domainavailability.BlockID) (domainavailability.Block, error) {
	var doc blockDocument
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": int64(id), "room_id": string(roomID)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainavailability.Block{}, domainavailability.ErrBlockNotFound
		}
		return domainavailability.Block{}, err
	}
	return doc.toBlock()
}

var _ domainavailability.Repository = (*BlockRepository)(nil)
