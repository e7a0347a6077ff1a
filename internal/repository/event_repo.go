package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beeynow/ADUSTECH/internal/model"
)

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection("events")}
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) (primitive.ObjectID, error) {
	now := time.Now()
	e.CreatedAt = &now
	res, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	e.ID = id
	return id, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	var e model.Event
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListUpcoming filters on expireAt at query time; the TTL index only prunes
// storage and may lag.
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	cur, err := r.coll.Find(ctx, bson.M{"expireAt": bson.M{"$gt": now}},
		options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []model.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
