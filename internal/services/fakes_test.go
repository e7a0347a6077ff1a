package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/repository"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) byID(id primitive.ObjectID) *model.User {
	for _, u := range f.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (f *fakeUserStore) Create(ctx context.Context, u *model.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	f.users[u.Email] = &cp
	return u.ID, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID(id)
	if u == nil {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserStore) SetOTP(ctx context.Context, email, otp string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	u.OTP = otp
	u.OTPExpiry = &expiry
	return nil
}

func (f *fakeUserStore) VerifyOTP(ctx context.Context, email, otp string, now time.Time) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok || u.IsVerified || u.OTP == "" || u.OTP != otp || u.OTPExpiry == nil || u.OTPExpiry.Before(now) {
		return nil, repository.ErrNotFound
	}
	u.IsVerified = true
	u.OTP = ""
	u.OTPExpiry = nil
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID(id)
	if u == nil {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpires = nil
	return nil
}

func (f *fakeUserStore) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID(id)
	if u == nil {
		return repository.ErrNotFound
	}
	u.ResetPasswordToken = token
	u.ResetPasswordExpires = &expiry
	return nil
}

func (f *fakeUserStore) ResetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID(id)
	if u == nil {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpires = nil
	return nil
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID(id)
	if u == nil {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserStore) PromoteToAdmin(ctx context.Context, id primitive.ObjectID, name, hash string, role model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID(id)
	if u == nil {
		return repository.ErrNotFound
	}
	u.Name = name
	u.PasswordHash = hash
	u.Role = role
	u.IsVerified = true
	u.OTP = ""
	u.OTPExpiry = nil
	return nil
}

func (f *fakeUserStore) ListAdmins(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		if u.Role != model.RoleUser {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd model.ProfileUpdate) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID(id)
	if u == nil {
		return nil, repository.ErrNotFound
	}
	if upd.Name != nil && *upd.Name != "" {
		u.Name = *upd.Name
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Department != nil {
		u.Department = *upd.Department
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) SetProfileImage(ctx context.Context, id primitive.ObjectID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID(id)
	if u == nil {
		return repository.ErrNotFound
	}
	u.ProfileImage = url
	return nil
}

// fakeMailer records every send so tests can assert notification behavior.
type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool // when set, every send returns an error
}

func (f *fakeMailer) record(kind string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, kind)
	if f.fail {
		return fmt.Errorf("smtp down")
	}
	return nil
}

func (f *fakeMailer) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeMailer) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return f.record("welcome")
}
func (f *fakeMailer) SendOTPEmail(ctx context.Context, to, name, otp string) error {
	return f.record("otp")
}
func (f *fakeMailer) SendResendOTPEmail(ctx context.Context, to, name, otp string) error {
	return f.record("resend-otp")
}
func (f *fakeMailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	return f.record("password-reset")
}
func (f *fakeMailer) SendPasswordChangedEmail(ctx context.Context, to, name string) error {
	return f.record("password-changed")
}
func (f *fakeMailer) SendRoleChangeEmail(ctx context.Context, to, name string, previous, next model.Role) error {
	return f.record("role-change")
}

// fakeUploader returns a deterministic URL without touching the network.
type fakeUploader struct {
	fail bool
}

func (f *fakeUploader) UploadImage(ctx context.Context, dataURI, folder string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("upload failed")
	}
	return "https://cdn.example.com/" + folder + "/img", nil
}

func (f *fakeUploader) UploadPDF(ctx context.Context, dataURI, folder string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("upload failed")
	}
	return "https://cdn.example.com/" + folder + "/pdf", nil
}

// fakePostStore keeps posts in a slice.
type fakePostStore struct {
	mu    sync.Mutex
	posts []*model.Post
}

func (f *fakePostStore) get(id primitive.ObjectID) *model.Post {
	for _, p := range f.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (f *fakePostStore) Create(ctx context.Context, p *model.Post) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	now := time.Now()
	p.CreatedAt = &now
	cp := *p
	f.posts = append(f.posts, &cp)
	return p.ID, nil
}

func (f *fakePostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(id)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostStore) List(ctx context.Context, q, category string, page, limit int) ([]model.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Post
	for _, p := range f.posts {
		if category != "" && category != model.CategoryAll && p.Category != category {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePostStore) SetLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(id)
	if p == nil {
		return repository.ErrNotFound
	}
	p.Likes = likes
	return nil
}

func (f *fakePostStore) SetReposts(ctx context.Context, id primitive.ObjectID, reposts []primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(id)
	if p == nil {
		return repository.ErrNotFound
	}
	p.Reposts = reposts
	return nil
}

func (f *fakePostStore) AddComment(ctx context.Context, postID primitive.ObjectID, c model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(postID)
	if p == nil {
		return repository.ErrNotFound
	}
	p.Comments = append(p.Comments, c)
	return nil
}

func (f *fakePostStore) SetCommentLikes(ctx context.Context, postID, commentID primitive.ObjectID, likes []primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(postID)
	if p == nil {
		return repository.ErrNotFound
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments[i].Likes = likes
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeChannelStore keeps channels in a slice.
type fakeChannelStore struct {
	mu       sync.Mutex
	channels []*model.Channel
}

func (f *fakeChannelStore) Create(ctx context.Context, ch *model.Channel) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// the channels collection carries a unique name index
	for _, existing := range f.channels {
		if existing.Name == ch.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	ch.ID = primitive.NewObjectID()
	cp := *ch
	f.channels = append(f.channels, &cp)
	return ch.ID, nil
}

func (f *fakeChannelStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.channels {
		if ch.ID == id {
			cp := *ch
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeChannelStore) GetByName(ctx context.Context, name string) (*model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.channels {
		if ch.Name == name {
			cp := *ch
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeChannelStore) AddMember(ctx context.Context, id, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.channels {
		if ch.ID == id {
			if !ch.HasMember(userID) {
				ch.Members = append(ch.Members, userID)
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeChannelStore) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Channel
	for _, ch := range f.channels {
		if ch.HasMember(userID) {
			out = append(out, *ch)
		}
	}
	return out, nil
}

// fakeEventStore filters on the now passed in, like the Mongo query does.
type fakeEventStore struct {
	mu     sync.Mutex
	events []*model.Event
}

func (f *fakeEventStore) Create(ctx context.Context, e *model.Event) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = primitive.NewObjectID()
	cp := *e
	f.events = append(f.events, &cp)
	return e.ID, nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEventStore) ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Event
	for _, e := range f.events {
		if e.ExpireAt.After(now) {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeTimetableStore struct {
	mu   sync.Mutex
	rows []*model.Timetable
}

func (f *fakeTimetableStore) Create(ctx context.Context, t *model.Timetable) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = primitive.NewObjectID()
	cp := *t
	f.rows = append(f.rows, &cp)
	return t.ID, nil
}

func (f *fakeTimetableStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Timetable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.rows {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTimetableStore) ListActive(ctx context.Context, now time.Time) ([]model.Timetable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Timetable
	for _, t := range f.rows {
		if t.ExpireAt.After(now) {
			out = append(out, *t)
		}
	}
	return out, nil
}
