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

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection("posts")}
}

func (r *PostRepository) Create(ctx context.Context, p *model.Post) (primitive.ObjectID, error) {
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	if p.Reposts == nil {
		p.Reposts = []primitive.ObjectID{}
	}
	if p.Comments == nil {
		p.Comments = []model.Comment{}
	}
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	p.ID = id
	return id, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var p model.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns a page of posts, newest first, with the total match count.
// q matches text or author name case-insensitively; category "All" means no
// category filter.
func (r *PostRepository) List(ctx context.Context, q, category string, page, limit int) ([]model.Post, int64, error) {
	filter := bson.M{}
	if category != "" && category != model.CategoryAll {
		filter["category"] = category
	}
	if q != "" {
		filter["$or"] = bson.A{
			bson.M{"text": bson.M{"$regex": q, "$options": "i"}},
			bson.M{"userName": bson.M{"$regex": q, "$options": "i"}},
		}
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	skip := int64((page - 1) * limit)

	cur, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	posts := []model.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) SetLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	return r.setField(ctx, id, "likes", likes)
}

func (r *PostRepository) SetReposts(ctx context.Context, id primitive.ObjectID, reposts []primitive.ObjectID) error {
	return r.setField(ctx, id, "reposts", reposts)
}

func (r *PostRepository) setField(ctx context.Context, id primitive.ObjectID, field string, v interface{}) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{field: v, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, c model.Comment) error {
	res, err := r.coll.UpdateByID(ctx, postID, bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) SetCommentLikes(ctx context.Context, postID, commentID primitive.ObjectID, likes []primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$set": bson.M{"comments.$.likes": likes, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
