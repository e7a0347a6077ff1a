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

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) (primitive.ObjectID, error) {
	now := time.Now()
	u.CreatedAt = &now
	u.UpdatedAt = &now
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	u.ID = id
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetOTP overwrites any outstanding code; at most one OTP is live per account.
func (r *UserRepository) SetOTP(ctx context.Context, email, otp string, expiry time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"otp": otp, "otpExpiry": expiry, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// VerifyOTP consumes a code in one conditional update so that concurrent
// verify calls for the same code cannot both succeed. ErrNotFound means the
// filter matched nothing; the caller diagnoses against a fresh read.
func (r *UserRepository) VerifyOTP(ctx context.Context, email, otp string, now time.Time) (*model.User, error) {
	filter := bson.M{
		"email":      email,
		"otp":        otp,
		"otpExpiry":  bson.M{"$gte": now},
		"isVerified": false,
	}
	update := bson.M{
		"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"otp": "", "otpExpiry": ""},
	}
	var u model.User
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePassword also discards any outstanding reset token: once the
// password changes, previously issued reset codes must stop working.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"password": hash, "updatedAt": time.Now()},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"resetPasswordToken": token, "resetPasswordExpires": expiry, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword replaces the hash and clears the reset token together.
func (r *UserRepository) ResetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.UpdatePassword(ctx, id, hash)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id primitive.ObjectID, role model.Role) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"role": role, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PromoteToAdmin rewrites the credentials of an existing user-role account
// and marks it verified, clearing any pending OTP.
func (r *UserRepository) PromoteToAdmin(ctx context.Context, id primitive.ObjectID, name, hash string, role model.Role) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"name":       name,
			"password":   hash,
			"role":       role,
			"isVerified": true,
			"updatedAt":  time.Now(),
		},
		"$unset": bson.M{"otp": "", "otpExpiry": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListAdmins(ctx context.Context) ([]model.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{"role": bson.M{"$ne": model.RoleUser}},
		options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd model.ProfileUpdate) (*model.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil && *upd.Name != "" {
		set["name"] = *upd.Name
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.ProfileImage != nil {
		set["profileImage"] = *upd.ProfileImage
	}
	if upd.Level != nil {
		set["level"] = *upd.Level
	}
	if upd.Department != nil {
		set["department"] = *upd.Department
	}
	if upd.Faculty != nil {
		set["faculty"] = *upd.Faculty
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.DateOfBirth != nil {
		set["dateOfBirth"] = *upd.DateOfBirth
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Country != nil {
		set["country"] = *upd.Country
	}

	var u model.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) SetProfileImage(ctx context.Context, id primitive.ObjectID, url string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"profileImage": url, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
