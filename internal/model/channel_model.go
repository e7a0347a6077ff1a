package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Channel struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Visibility  string               `bson:"visibility" json:"visibility"` // public | private
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	CreatedAt   *time.Time           `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   *time.Time           `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (c *Channel) HasMember(id primitive.ObjectID) bool {
	for _, m := range c.Members {
		if m == id {
			return true
		}
	}
	return false
}
