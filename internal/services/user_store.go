package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/beeynow/ADUSTECH/internal/model"
)

// UserStore is the slice of the user repository the account services need.
// Tests substitute an in-memory fake; repository.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	SetOTP(ctx context.Context, email, otp string, expiry time.Time) error
	VerifyOTP(ctx context.Context, email, otp string, now time.Time) (*model.User, error)

	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, hash string) error

	UpdateRole(ctx context.Context, id primitive.ObjectID, role model.Role) error
	PromoteToAdmin(ctx context.Context, id primitive.ObjectID, name, hash string, role model.Role) error
	ListAdmins(ctx context.Context) ([]model.User, error)

	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd model.ProfileUpdate) (*model.User, error)
	SetProfileImage(ctx context.Context, id primitive.ObjectID, url string) error
}
