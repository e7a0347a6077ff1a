package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/repository"
)

func newChannelService() (*ChannelService, *fakeChannelStore, *fakeUserStore) {
	channels := &fakeChannelStore{}
	users := newFakeUserStore()
	return NewChannelService(channels, users), channels, users
}

func seedMember(t *testing.T, users *fakeUserStore, email, department string) primitive.ObjectID {
	t.Helper()
	id, err := users.Create(context.Background(), &model.User{
		Name: "Student", Email: email, Role: model.RoleUser, IsVerified: true, Department: department,
	})
	require.NoError(t, err)
	return id
}

func TestListCreatesDepartmentChannelLazily(t *testing.T) {
	t.Parallel()
	svc, channels, users := newChannelService()
	ctx := context.Background()

	ada := seedMember(t, users, "ada@campus.edu", "Computer Science")

	listed, err := svc.List(ctx, ada)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Computer Science", listed[0].Name)
	assert.Equal(t, "Computer Science department", listed[0].Description)
	assert.True(t, listed[0].HasMember(ada))

	// a departmentmate joins the same channel instead of creating a second one
	deb := seedMember(t, users, "deb@campus.edu", "Computer Science")
	listed, err = svc.List(ctx, deb)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].HasMember(deb))
	assert.Len(t, channels.channels, 1)
}

func TestListWithoutDepartment(t *testing.T) {
	t.Parallel()
	svc, channels, users := newChannelService()
	ctx := context.Background()

	ada := seedMember(t, users, "ada@campus.edu", "")
	listed, err := svc.List(ctx, ada)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Empty(t, channels.channels)
}

func TestCreateChannelJoinsOnDuplicateName(t *testing.T) {
	t.Parallel()
	svc, _, users := newChannelService()
	ctx := context.Background()

	ada := seedMember(t, users, "ada@campus.edu", "")
	deb := seedMember(t, users, "deb@campus.edu", "")

	_, _, err := svc.Create(ctx, ada, "  ", "", "")
	assert.ErrorIs(t, err, ErrNameRequired)

	ch, created, err := svc.Create(ctx, ada, "chess club", "for chess", "bogus")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "public", ch.Visibility)

	// same name again: no error, second caller is enrolled
	joined, created, err := svc.Create(ctx, deb, "chess club", "", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, ch.ID, joined.ID)
	assert.True(t, joined.HasMember(ada))
	assert.True(t, joined.HasMember(deb))
}

// racingChannelStore reports the name as free once, so the service's
// read-then-insert loses to a concurrent create and hits the unique index.
type racingChannelStore struct {
	*fakeChannelStore
	missed bool
}

func (r *racingChannelStore) GetByName(ctx context.Context, name string) (*model.Channel, error) {
	if !r.missed {
		r.missed = true
		return nil, repository.ErrNotFound
	}
	return r.fakeChannelStore.GetByName(ctx, name)
}

func TestCreateChannelLosingRaceJoinsWinner(t *testing.T) {
	t.Parallel()
	store := &racingChannelStore{fakeChannelStore: &fakeChannelStore{}}
	users := newFakeUserStore()
	svc := NewChannelService(store, users)
	ctx := context.Background()

	ada := seedMember(t, users, "ada@campus.edu", "")
	deb := seedMember(t, users, "deb@campus.edu", "")

	winner := &model.Channel{Name: "chess club", Visibility: "public", CreatedBy: ada,
		Members: []primitive.ObjectID{ada}}
	_, err := store.fakeChannelStore.Create(ctx, winner)
	require.NoError(t, err)

	ch, created, err := svc.Create(ctx, deb, "chess club", "", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, ch.ID)
	assert.True(t, ch.HasMember(deb))
}

func TestGetChannelMembership(t *testing.T) {
	t.Parallel()
	svc, _, users := newChannelService()
	ctx := context.Background()

	ada := seedMember(t, users, "ada@campus.edu", "Computer Science")
	deb := seedMember(t, users, "deb@campus.edu", "Physics")
	csDeb := seedMember(t, users, "cs@campus.edu", "computer science") // dept match is case-insensitive

	ch, created, err := svc.Create(ctx, ada, "Computer Science", "", "")
	require.NoError(t, err)
	require.True(t, created)

	got, err := svc.Get(ctx, ch.ID, ada)
	require.NoError(t, err)
	assert.Equal(t, ch.ID, got.ID)

	// outsider from another department is rejected
	_, err = svc.Get(ctx, ch.ID, deb)
	assert.ErrorIs(t, err, ErrNotChannelMember)

	// same-department non-member is auto-joined
	got, err = svc.Get(ctx, ch.ID, csDeb)
	require.NoError(t, err)
	assert.True(t, got.HasMember(csDeb))

	_, err = svc.Get(ctx, primitive.NewObjectID(), ada)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}
