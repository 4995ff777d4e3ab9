package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomrates/internal/domain/rooms"
)

// RoomRepository stores each property with its rooms embedded.
type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection(propertiesCollection)}
}

func (r *RoomRepository) Property(ctx context.Context, id rooms.PropertyID) (rooms.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return rooms.Property{}, rooms.ErrPropertyNotFound
		}
		return rooms.Property{}, err
	}
	return doc.toProperty(), nil
}

func (r *RoomRepository) Properties(ctx context.Context) ([]rooms.Property, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []rooms.Property
	for cur.Next(ctx) {
		var doc propertyDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toProperty())
	}
	return out, cur.Err()
}

func (r *RoomRepository) Room(ctx context.Context, id rooms.RoomID) (rooms.Room, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"rooms.id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return rooms.Room{}, rooms.ErrRoomNotFound
		}
		return rooms.Room{}, err
	}
	for _, room := range doc.toProperty().Rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return rooms.Room{}, rooms.ErrRoomNotFound
}

func (r *RoomRepository) SaveProperty(ctx context.Context, p rooms.Property) error {
	doc := newPropertyDocument(p)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *RoomRepository) BumpVersion(ctx context.Context, id rooms.RoomID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"rooms.id": string(id)},
		bson.M{"$inc": bson.M{"rooms.$.version": int64(1)}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return rooms.ErrRoomNotFound
	}
	return nil
}

var _ rooms.Repository = (*RoomRepository)(nil)
