package organisation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdir/internal/directory/models"
)

func seedOrg(t *testing.T, store *InMemory, verified bool) *models.Organisation {
	t.Helper()

	org := &models.Organisation{
		ID:                    uuid.New(),
		Name:                  "Shelter North",
		IsVerified:            verified,
		LastSubstantiveUpdate: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		UpdatedAt:             time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		Administrators: []models.Administrator{
			{Name: "Ada", Email: "ada@shelter.org", IsSelected: true},
		},
		Address: models.Address{Line1: "1 High St", City: "Manchester", Postcode: "M1 1AA"},
	}
	require.NoError(t, store.Create(context.Background(), org))
	return org
}

func TestInMemory_GetClonesRecords(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	org := seedOrg(t, store, true)

	got, err := store.Get(ctx, org.ID)
	require.NoError(t, err)

	// Mutating the returned copy must not leak into the store.
	got.Name = "mutated"
	got.Administrators[0].Email = "mutated@example.org"

	again, err := store.Get(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shelter North", again.Name)
	assert.Equal(t, "ada@shelter.org", again.Administrators[0].Email)
}

func TestInMemory_Get_Missing(t *testing.T) {
	store := NewInMemory()
	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemory_Unverify(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)

	t.Run("flips flag without touching aging clock", func(t *testing.T) {
		store := NewInMemory()
		org := seedOrg(t, store, true)

		require.NoError(t, store.Unverify(ctx, org.ID, now))

		got, err := store.Get(ctx, org.ID)
		require.NoError(t, err)
		assert.False(t, got.IsVerified)
		assert.Equal(t, now, got.UpdatedAt)
		assert.Equal(t, org.LastSubstantiveUpdate, got.LastSubstantiveUpdate,
			"unverify must not restart the aging clock")
	})

	t.Run("already unverified", func(t *testing.T) {
		store := NewInMemory()
		org := seedOrg(t, store, false)
		assert.ErrorIs(t, store.Unverify(ctx, org.ID, now), ErrAlreadyUnverified)
	})

	t.Run("missing organisation", func(t *testing.T) {
		store := NewInMemory()
		assert.ErrorIs(t, store.Unverify(ctx, uuid.New(), now), ErrNotFound)
	})
}

func TestInMemory_UpdateAddress(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)

	t.Run("substantive edit moves aging clock", func(t *testing.T) {
		store := NewInMemory()
		org := seedOrg(t, store, true)

		addr := models.Address{Line1: "2 New Rd", City: "Manchester", Postcode: "M2 2BB"}
		require.NoError(t, store.UpdateAddress(ctx, org.ID, addr, true, now))

		got, err := store.Get(ctx, org.ID)
		require.NoError(t, err)
		assert.Equal(t, "M2 2BB", got.Address.Postcode)
		assert.Equal(t, now, got.LastSubstantiveUpdate)
	})

	t.Run("coordinate refresh leaves aging clock alone", func(t *testing.T) {
		store := NewInMemory()
		org := seedOrg(t, store, true)

		addr := org.Address
		addr.Coordinates = &models.Coordinates{Longitude: -2.23, Latitude: 53.48}
		require.NoError(t, store.UpdateAddress(ctx, org.ID, addr, false, now))

		got, err := store.Get(ctx, org.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Address.Coordinates)
		assert.Equal(t, org.LastSubstantiveUpdate, got.LastSubstantiveUpdate)
		assert.Equal(t, now, got.UpdatedAt)
	})
}
