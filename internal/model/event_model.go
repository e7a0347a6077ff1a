package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Details       string             `bson:"details" json:"details"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl"`
	Location      string             `bson:"location,omitempty" json:"location"`
	StartsAt      time.Time          `bson:"startsAt" json:"startsAt"`
	ExpireAt      time.Time          `bson:"expireAt" json:"expireAt"` // TTL-indexed
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedByName string             `bson:"createdByName" json:"createdByName"`
	CreatedAt     *time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
