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

type ChannelRepository struct {
	coll *mongo.Collection
}

func NewChannelRepository(db *mongo.Database) *ChannelRepository {
	return &ChannelRepository{coll: db.Collection("channels")}
}

func (r *ChannelRepository) Create(ctx context.Context, ch *model.Channel) (primitive.ObjectID, error) {
	now := time.Now()
	ch.CreatedAt = &now
	ch.UpdatedAt = &now
	if ch.Members == nil {
		ch.Members = []primitive.ObjectID{}
	}
	res, err := r.coll.InsertOne(ctx, ch)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	ch.ID = id
	return id, nil
}

func (r *ChannelRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Channel, error) {
	var ch model.Channel
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

func (r *ChannelRepository) GetByName(ctx context.Context, name string) (*model.Channel, error) {
	var ch model.Channel
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&ch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// AddMember is a no-op when the user is already in the member set.
func (r *ChannelRepository) AddMember(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChannelRepository) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]model.Channel, error) {
	cur, err := r.coll.Find(ctx, bson.M{"members": userID},
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	channels := []model.Channel{}
	if err := cur.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}
