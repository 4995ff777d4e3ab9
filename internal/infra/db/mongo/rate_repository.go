package mongo

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpricing "roomrates/internal/domain/pricing"
	"roomrates/internal/domain/rooms"
)

type RateRepository struct {
	col      *mongo.Collection
	counters *Counters
	Logger   *slog.Logger
}

func NewRateRepository(db *mongo.Database, counters *Counters) *RateRepository {
	return &RateRepository{col: db.Collection(ratesCollection), counters: counters}
}

func (r *RateRepository) Rates(ctx context.Context, roomIDs ...rooms.RoomID) ([]domainpricing.SeasonalRate, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"room_id": bson.M{"$in": roomIDStrings(roomIDs)}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []domainpricing.SeasonalRate
	for cur.Next(ctx) {
		var doc rateDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		rate, err := doc.toRate()
		if err != nil {
			if r.Logger != nil {
				r.Logger.WarnContext(ctx, "skipping unreadable seasonal rate", "room_id", doc.RoomID, "error", err)
			}
			continue
		}
		out = append(out, rate)
	}
	return out, cur.Err()
}

// Add takes the next id from the counters collection, so later rates always
// win the highest-id tie-break.
func (r *RateRepository) Add(ctx context.Context, rate domainpricing.SeasonalRate) (domainpricing.SeasonalRate, error) {
	id, err := r.counters.Next(ctx, ratesCollection)
	if err != nil {
		return domainpricing.SeasonalRate{}, err
	}
	rate.ID = domainpricing.RateID(id)
	if _, err := r.col.InsertOne(ctx, newRateDocument(rate)); err != nil {
		return domainpricing.SeasonalRate{}, err
	}
	return rate, nil
}

func (r *RateRepository) Remove(ctx context.Context, roomID rooms.RoomID, id domainpricing.RateID) (domainpricing.SeasonalRate, error) {
	var doc rateDocument
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": int64(id), "room_id": string(roomID)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainpricing.SeasonalRate{}, domainpricing.ErrRateNotFound
		}
		return domainpricing.SeasonalRate{}, err
	}
	return doc.toRate()
}

var _ domainpricing.Repository = (*RateRepository)(nil)
