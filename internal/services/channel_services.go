package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/repository"
)

type ChannelStore interface {
	Create(ctx context.Context, ch *model.Channel) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Channel, error)
	GetByName(ctx context.Context, name string) (*model.Channel, error)
	AddMember(ctx context.Context, id, userID primitive.ObjectID) error
	ListByMember(ctx context.Context, userID primitive.ObjectID) ([]model.Channel, error)
}

type ChannelService struct {
	Channels ChannelStore
	Users    UserStore
}

func NewChannelService(channels ChannelStore, users UserStore) *ChannelService {
	return &ChannelService{Channels: channels, Users: users}
}

// ensureDepartmentChannel lazily creates the caller's department channel and
// enrolls them. The department is read fresh from the store, not taken from
// the session snapshot.
func (s *ChannelService) ensureDepartmentChannel(ctx context.Context, userID primitive.ObjectID) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	dept := strings.TrimSpace(u.Department)
	if dept == "" {
		return nil
	}

	ch, err := s.Channels.GetByName(ctx, dept)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_, err = s.Channels.Create(ctx, &model.Channel{
				Name:        dept,
				Description: fmt.Sprintf("%s department", dept),
				Visibility:  "public",
				CreatedBy:   userID,
				Members:     []primitive.ObjectID{userID},
			})
			if errors.Is(err, repository.ErrDuplicate) {
				// lost the create race to a departmentmate; join theirs
				ch, err = s.Channels.GetByName(ctx, dept)
				if err != nil {
					return err
				}
				return s.Channels.AddMember(ctx, ch.ID, userID)
			}
			return err
		}
		return err
	}
	if !ch.HasMember(userID) {
		return s.Channels.AddMember(ctx, ch.ID, userID)
	}
	return nil
}

// List returns the caller's channels, most recently active first.
func (s *ChannelService) List(ctx context.Context, userID primitive.ObjectID) ([]model.Channel, error) {
	if err := s.ensureDepartmentChannel(ctx, userID); err != nil {
		return nil, err
	}
	return s.Channels.ListByMember(ctx, userID)
}

// Create makes a new channel, or joins the caller to an existing one with
// the same name instead of erroring. The second return value reports whether
// a new channel was created.
func (s *ChannelService) Create(ctx context.Context, userID primitive.ObjectID, name, description, visibility string) (*model.Channel, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrNameRequired
	}
	if visibility != "private" {
		visibility = "public"
	}

	existing, err := s.Channels.GetByName(ctx, name)
	if err == nil {
		if !existing.HasMember(userID) {
			if err := s.Channels.AddMember(ctx, existing.ID, userID); err != nil {
				return nil, false, err
			}
			existing.Members = append(existing.Members, userID)
		}
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	ch := &model.Channel{
		Name:        name,
		Description: description,
		Visibility:  visibility,
		CreatedBy:   userID,
		Members:     []primitive.ObjectID{userID},
	}
	if _, err := s.Channels.Create(ctx, ch); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// a concurrent create with the same name won; join it instead
			winner, gerr := s.Channels.GetByName(ctx, name)
			if gerr != nil {
				return nil, false, gerr
			}
			if !winner.HasMember(userID) {
				if aerr := s.Channels.AddMember(ctx, winner.ID, userID); aerr != nil {
					return nil, false, aerr
				}
				winner.Members = append(winner.Members, userID)
			}
			return winner, false, nil
		}
		return nil, false, err
	}
	return ch, true, nil
}

// Get returns a channel to its members. A non-member is auto-joined only
// when the channel is named after their department.
func (s *ChannelService) Get(ctx context.Context, channelID, userID primitive.ObjectID) (*model.Channel, error) {
	ch, err := s.Channels.GetByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	if ch.HasMember(userID) {
		return ch, nil
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	dept := strings.ToLower(strings.TrimSpace(u.Department))
	name := strings.ToLower(strings.TrimSpace(ch.Name))
	if dept == "" || dept != name {
		return nil, ErrNotChannelMember
	}
	if err := s.Channels.AddMember(ctx, ch.ID, userID); err != nil {
		return nil, err
	}
	ch.Members = append(ch.Members, userID)
	return ch, nil
}
