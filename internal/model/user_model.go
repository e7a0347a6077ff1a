package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"` // never JSON-encode
	Role         Role               `bson:"role" json:"role"`

	// Verification state. OTP fields are unset outside an open window.
	IsVerified bool       `bson:"isVerified" json:"isVerified"`
	OTP        string     `bson:"otp,omitempty" json:"-"`
	OTPExpiry  *time.Time `bson:"otpExpiry,omitempty" json:"-"`

	ResetPasswordToken   string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`

	// Profile
	Bio          string     `bson:"bio,omitempty" json:"bio"`
	ProfileImage string     `bson:"profileImage,omitempty" json:"profileImage"`
	Level        string     `bson:"level,omitempty" json:"level"`
	Department   string     `bson:"department,omitempty" json:"department"`
	Faculty      string     `bson:"faculty,omitempty" json:"faculty"`
	Phone        string     `bson:"phone,omitempty" json:"phone"`
	DateOfBirth  *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender       string     `bson:"gender,omitempty" json:"gender"`
	Address      string     `bson:"address,omitempty" json:"address"`
	Country      string     `bson:"country,omitempty" json:"country"`

	CreatedAt *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PublicUser is the view returned by login and the admin listing.
type PublicUser struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Name  string             `json:"name"`
	Role  Role               `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// ProfileUpdate carries optional profile fields; nil means "leave unchanged".
type ProfileUpdate struct {
	Name         *string    `json:"name"`
	Bio          *string    `json:"bio"`
	ProfileImage *string    `json:"profileImage"`
	Level        *string    `json:"level"`
	Department   *string    `json:"department"`
	Faculty      *string    `json:"faculty"`
	Phone        *string    `json:"phone"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	Gender       *string    `json:"gender"`
	Address      *string    `json:"address"`
	Country      *string    `json:"country"`
}
