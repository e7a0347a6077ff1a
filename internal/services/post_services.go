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

// PostStore is the slice of the post repository the feed service needs.
type PostStore interface {
	Create(ctx context.Context, p *model.Post) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	List(ctx context.Context, q, category string, page, limit int) ([]model.Post, int64, error)
	SetLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error
	SetReposts(ctx context.Context, id primitive.ObjectID, reposts []primitive.ObjectID) error
	AddComment(ctx context.Context, postID primitive.ObjectID, c model.Comment) error
	SetCommentLikes(ctx context.Context, postID, commentID primitive.ObjectID, likes []primitive.ObjectID) error
}

type PostService struct {
	Posts    PostStore
	Uploader MediaUploader
}

func NewPostService(posts PostStore, uploader MediaUploader) *PostService {
	return &PostService{Posts: posts, Uploader: uploader}
}

func postErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

// toggle removes id from ids when present, appends it otherwise. The second
// return value reports whether id is in the resulting set.
func toggle(ids []primitive.ObjectID, id primitive.ObjectID) ([]primitive.ObjectID, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), false
		}
	}
	return append(ids, id), true
}

// Create validates text/category, uploads an optional image and stores the
// post with the author's name snapshot.
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, userName, text, imageBase64, category string) (*model.Post, error) {
	text = strings.TrimSpace(text)
	if !model.ValidCategory(category) {
		category = model.CategoryAll
	}
	if text == "" && imageBase64 == "" {
		return nil, ErrEmptyPost
	}
	if len(text) > 2000 {
		return nil, ErrTextTooLong
	}

	imageURL := ""
	if imageBase64 != "" {
		if err := validateImageDataURI(imageBase64); err != nil {
			return nil, err
		}
		url, err := s.Uploader.UploadImage(ctx, imageBase64, "adustech/posts")
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	p := &model.Post{
		UserID:   userID,
		UserName: userName,
		Category: category,
		Text:     text,
		ImageURL: imageURL,
	}
	if _, err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context, q, category string, page, limit int) ([]model.Post, int64, error) {
	return s.Posts.List(ctx, q, category, page, limit)
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, postErr(err)
	}
	return p, nil
}

// ToggleLike flips the caller's membership in the like set and returns the
// new count and state. Read-modify-write: concurrent toggles by the same
// account may race, which is acceptable for feed semantics.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (int, bool, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return 0, false, postErr(err)
	}
	likes, liked := toggle(p.Likes, userID)
	if err := s.Posts.SetLikes(ctx, postID, likes); err != nil {
		return 0, false, postErr(err)
	}
	return len(likes), liked, nil
}

func (s *PostService) ToggleRepost(ctx context.Context, postID, userID primitive.ObjectID) (int, bool, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return 0, false, postErr(err)
	}
	reposts, reposted := toggle(p.Reposts, userID)
	if err := s.Posts.SetReposts(ctx, postID, reposts); err != nil {
		return 0, false, postErr(err)
	}
	return len(reposts), reposted, nil
}

func (s *PostService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, userName, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}
	now := time.Now()
	c := model.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		Likes:     []primitive.ObjectID{},
		CreatedAt: &now,
	}
	if err := s.Posts.AddComment(ctx, postID, c); err != nil {
		return nil, postErr(err)
	}
	return &c, nil
}

func (s *PostService) ListComments(ctx context.Context, postID primitive.ObjectID) ([]model.Comment, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, postErr(err)
	}
	return p.Comments, nil
}

func (s *PostService) ToggleCommentLike(ctx context.Context, postID, commentID, userID primitive.ObjectID) (int, bool, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return 0, false, postErr(err)
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			likes, liked := toggle(p.Comments[i].Likes, userID)
			if err := s.Posts.SetCommentLikes(ctx, postID, commentID, likes); err != nil {
				return 0, false, postErr(err)
			}
			return len(likes), liked, nil
		}
	}
	return 0, false, ErrCommentNotFound
}
