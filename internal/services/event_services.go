package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/repository"
)

// Events auto-expire this long after they start.
const eventExpiryWindow = 30 * time.Minute

type EventStore interface {
	Create(ctx context.Context, e *model.Event) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error)
}

type EventService struct {
	Events   EventStore
	Uploader MediaUploader

	now func() time.Time
}

func NewEventService(events EventStore, uploader MediaUploader) *EventService {
	return &EventService{Events: events, Uploader: uploader, now: time.Now}
}

// Create stores an event with expiry derived at creation time. Role checks
// live in the route middleware.
func (s *EventService) Create(ctx context.Context, createdBy primitive.ObjectID, createdByName, title, details, location, imageBase64 string, startsAt time.Time) (*model.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if startsAt.IsZero() {
		return nil, ErrInvalidDate
	}

	imageURL := ""
	if imageBase64 != "" {
		if err := validateImageDataURI(imageBase64); err != nil {
			return nil, err
		}
		url, err := s.Uploader.UploadImage(ctx, imageBase64, "adustech/events")
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	e := &model.Event{
		Title:         title,
		Details:       strings.TrimSpace(details),
		ImageURL:      imageURL,
		Location:      strings.TrimSpace(location),
		StartsAt:      startsAt,
		ExpireAt:      startsAt.Add(eventExpiryWindow),
		CreatedBy:     createdBy,
		CreatedByName: createdByName,
	}
	if _, err := s.Events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns events that have not expired. The query-time filter is
// authoritative; the TTL index merely prunes storage.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	return s.Events.ListUpcoming(ctx, s.now())
}

func (s *EventService) Get(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}
