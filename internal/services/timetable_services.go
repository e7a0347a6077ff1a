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

type TimetableStore interface {
	Create(ctx context.Context, t *model.Timetable) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Timetable, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Timetable, error)
}

type TimetableService struct {
	Timetables TimetableStore
	Uploader   MediaUploader

	now func() time.Time
}

func NewTimetableService(timetables TimetableStore, uploader MediaUploader) *TimetableService {
	return &TimetableService{Timetables: timetables, Uploader: uploader, now: time.Now}
}

// endOfDay returns the last instant of d's calendar day; a timetable stays
// listed until its effective day is over.
func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999000000, d.Location())
}

func (s *TimetableService) Create(ctx context.Context, createdBy primitive.ObjectID, createdByName, title, details, imageBase64, pdfBase64 string, effectiveDate time.Time) (*model.Timetable, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if effectiveDate.IsZero() {
		return nil, ErrInvalidDate
	}

	imageURL := ""
	if imageBase64 != "" {
		if err := validateImageDataURI(imageBase64); err != nil {
			return nil, err
		}
		url, err := s.Uploader.UploadImage(ctx, imageBase64, "adustech/timetables")
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	pdfURL := ""
	if pdfBase64 != "" {
		if err := validatePDFDataURI(pdfBase64); err != nil {
			return nil, err
		}
		url, err := s.Uploader.UploadPDF(ctx, pdfBase64, "adustech/timetables")
		if err != nil {
			return nil, err
		}
		pdfURL = url
	}

	t := &model.Timetable{
		Title:         title,
		Details:       strings.TrimSpace(details),
		ImageURL:      imageURL,
		PDFURL:        pdfURL,
		EffectiveDate: effectiveDate,
		ExpireAt:      endOfDay(effectiveDate),
		CreatedBy:     createdBy,
		CreatedByName: createdByName,
	}
	if _, err := s.Timetables.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TimetableService) List(ctx context.Context) ([]model.Timetable, error) {
	return s.Timetables.ListActive(ctx, s.now())
}

func (s *TimetableService) Get(ctx context.Context, id primitive.ObjectID) (*model.Timetable, error) {
	t, err := s.Timetables.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimetableNotFound
		}
		return nil, err
	}
	return t, nil
}
