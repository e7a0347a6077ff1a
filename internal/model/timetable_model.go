package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Timetable struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Details       string             `bson:"details" json:"details"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl"`
	PDFURL        string             `bson:"pdfUrl,omitempty" json:"pdfUrl"`
	EffectiveDate time.Time          `bson:"effectiveDate" json:"effectiveDate"`
	ExpireAt      time.Time          `bson:"expireAt" json:"expireAt"` // TTL-indexed
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedByName string             `bson:"createdByName" json:"createdByName"`
	CreatedAt     *time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
