package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
)

// racingSavedStore reports a Find miss once while committing the row behind
// the caller's back, reproducing a lost toggle race.
type racingSavedStore struct {
	*fakeSavedStore
	user     primitive.ObjectID
	property primitive.ObjectID
	raced    bool
}

func (r *racingSavedStore) Find(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.Saved, error) {
	if !r.raced {
		r.raced = true
		_ = r.fakeSavedStore.Create(ctx, &models.Saved{UserID: r.user, PropertyID: r.property})
		return nil, repositories.ErrNotFound
	}
	return r.fakeSavedStore.Find(ctx, userID, propertyID)
}

func TestToggleFlipsState(t *testing.T) {
	properties := &fakePropertyStore{}
	saved := &fakeSavedStore{}
	svc := NewSavedService(saved, properties)

	owner := testUser(t, "asha")
	fan := testUser(t, "ravi")
	property := testProperty(t, owner, 4500000)
	properties.properties = []*models.Property{property}
	ctx := context.Background()

	on, err := svc.Toggle(ctx, fan, property.ID.Hex())
	require.NoError(t, err)
	assert.True(t, on)
	assert.Len(t, saved.rows, 1)

	off, err := svc.Toggle(ctx, fan, property.ID.Hex())
	require.NoError(t, err)
	assert.False(t, off)
	assert.Empty(t, saved.rows)

	on, err = svc.Toggle(ctx, fan, property.ID.Hex())
	require.NoError(t, err)
	assert.True(t, on, "a fresh toggle saves again")
}

func TestToggleUnknownProperty(t *testing.T) {
	svc := NewSavedService(&fakeSavedStore{}, &fakePropertyStore{})
	fan := testUser(t, "ravi")

	_, err := svc.Toggle(context.Background(), fan, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Toggle(context.Background(), fan, "not-a-hex-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleAbsorbsRacingDuplicate(t *testing.T) {
	properties := &fakePropertyStore{}
	saved := &fakeSavedStore{}
	svc := NewSavedService(saved, properties)

	owner := testUser(t, "asha")
	fan := testUser(t, "ravi")
	property := testProperty(t, owner, 4500000)
	properties.properties = []*models.Property{property}

	// Simulate a racing toggle that wins the insert between our Find miss
	// and our Create: the unique index then rejects our insert, and the
	// service reports the row as saved instead of failing.
	race := &racingSavedStore{fakeSavedStore: saved, property: property.ID, user: fan.ID}
	svc = NewSavedService(race, properties)

	on, err := svc.Toggle(context.Background(), fan, property.ID.Hex())
	require.NoError(t, err)
	assert.True(t, on, "state converges to saved")
	assert.Len(t, saved.rows, 1, "exactly one row exists")
}

func TestSavedListFiltersDeletedProperties(t *testing.T) {
	properties := &fakePropertyStore{}
	saved := &fakeSavedStore{}
	svc := NewSavedService(saved, properties)

	owner := testUser(t, "asha")
	fan := testUser(t, "ravi")
	alive := testProperty(t, owner, 4500000)
	properties.properties = []*models.Property{alive}

	saved.rows = []*models.Saved{
		{ID: mustOID(t), UserID: fan.ID, PropertyID: alive.ID},
		{ID: mustOID(t), UserID: fan.ID, PropertyID: primitive.NewObjectID()}, // dangling
	}

	entries, err := svc.List(context.Background(), fan)
	require.NoError(t, err)
	require.Len(t, entries, 1, "dangling bookmarks are dropped")
	assert.Equal(t, alive.ID, entries[0].Property.ID)
}

func TestCheck(t *testing.T) {
	properties := &fakePropertyStore{}
	saved := &fakeSavedStore{}
	svc := NewSavedService(saved, properties)

	owner := testUser(t, "asha")
	fan := testUser(t, "ravi")
	property := testProperty(t, owner, 4500000)
	properties.properties = []*models.Property{property}
	ctx := context.Background()

	on, err := svc.Check(ctx, fan, property.ID.Hex())
	require.NoError(t, err)
	assert.False(t, on)

	_, err = svc.Toggle(ctx, fan, property.ID.Hex())
	require.NoError(t, err)

	on, err = svc.Check(ctx, fan, property.ID.Hex())
	require.NoError(t, err)
	assert.True(t, on)
}
