package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/repository"
)

type ProfileService struct {
	Users    UserStore
	Uploader MediaUploader
}

func NewProfileService(users UserStore, uploader MediaUploader) *ProfileService {
	return &ProfileService{Users: users, Uploader: uploader}
}

func (s *ProfileService) Get(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// genders the profile accepts; empty means "not stated".
var genders = map[string]struct{}{
	"":       {},
	"Male":   {},
	"Female": {},
	"Other":  {},
}

func (s *ProfileService) Update(ctx context.Context, userID primitive.ObjectID, upd model.ProfileUpdate) (*model.User, error) {
	if upd.Gender != nil {
		if _, ok := genders[*upd.Gender]; !ok {
			return nil, ErrInvalidGender
		}
	}
	u, err := s.Users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UploadImage sends the avatar to the media service and keeps only the URL.
func (s *ProfileService) UploadImage(ctx context.Context, userID primitive.ObjectID, imageBase64 string) (string, error) {
	if imageBase64 == "" {
		return "", ErrNoImage
	}
	if err := validateImageDataURI(imageBase64); err != nil {
		return "", err
	}
	url, err := s.Uploader.UploadImage(ctx, imageBase64, "adustech/profiles")
	if err != nil {
		return "", err
	}
	if err := s.Users.SetProfileImage(ctx, userID, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return url, nil
}
