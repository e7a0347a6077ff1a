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

type TimetableRepository struct {
	coll *mongo.Collection
}

func NewTimetableRepository(db *mongo.Database) *TimetableRepository {
	return &TimetableRepository{coll: db.Collection("timetables")}
}

func (r *TimetableRepository) Create(ctx context.Context, t *model.Timetable) (primitive.ObjectID, error) {
	now := time.Now()
	t.CreatedAt = &now
	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	t.ID = id
	return id, nil
}

func (r *TimetableRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Timetable, error) {
	var t model.Timetable
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TimetableRepository) ListActive(ctx context.Context, now time.Time) ([]model.Timetable, error) {
	cur, err := r.coll.Find(ctx, bson.M{"expireAt": bson.M{"$gt": now}},
		options.Find().SetSort(bson.D{{Key: "effectiveDate", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	timetables := []model.Timetable{}
	if err := cur.All(ctx, &timetables); err != nil {
		return nil, err
	}
	return timetables, nil
}
