package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories a post may carry; anything else is coerced to CategoryAll.
var PostCategories = []string{"All", "Level", "Department", "Exam", "Timetable", "Event"}

const CategoryAll = "All"

func ValidCategory(c string) bool {
	for _, v := range PostCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Comment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"userId" json:"userId"`
	UserName  string               `bson:"userName" json:"userName"`
	Text      string               `bson:"text" json:"text"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	CreatedAt *time.Time           `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	UserName string             `bson:"userName" json:"userName"`
	Category string             `bson:"category" json:"category"`
	Text     string             `bson:"text" json:"text"`
	ImageURL string             `bson:"imageUrl,omitempty" json:"imageUrl"`

	// Toggle sets: a user id appears at most once in each.
	Likes   []primitive.ObjectID `bson:"likes" json:"likes"`
	Reposts []primitive.ObjectID `bson:"reposts" json:"reposts"`

	Comments []Comment `bson:"comments" json:"comments"`

	CreatedAt *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
