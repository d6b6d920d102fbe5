package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdir/internal/directory/models"
	"supportdir/pkg/derrors"
)

// fakeResolver returns canned outcomes and counts lookups per normalized key.
type fakeResolver struct {
	coords map[string]models.Coordinates
	err    error
	calls  map[string]int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		coords: make(map[string]models.Coordinates),
		calls:  make(map[string]int),
	}
}

func (f *fakeResolver) Resolve(_ context.Context, postcode string) (*models.Coordinates, error) {
	key := cacheKey(postcode)
	f.calls[key]++
	if f.err != nil {
		return nil, f.err
	}
	if coords, ok := f.coords[key]; ok {
		return &coords, nil
	}
	return nil, errNotFound("geo.resolve", postcode)
}

func (f *fakeResolver) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func TestCoordinator_Sync_UnchangedPostcodeSkipsLookup(t *testing.T) {
	resolver := newFakeResolver()
	coordinator := NewCoordinator(resolver)

	addr := models.Address{
		Postcode:    "M1 1AA",
		Coordinates: &models.Coordinates{Longitude: -2.24, Latitude: 53.48},
	}

	got, warning := coordinator.Sync(context.Background(), "m1   1aa", addr)
	assert.Nil(t, warning)
	assert.Equal(t, addr, got, "output must be identical to input")
	assert.Zero(t, resolver.totalCalls(), "unchanged postcode with coordinates needs no lookup")
}

func TestCoordinator_Sync_ChangedPostcodeResolves(t *testing.T) {
	resolver := newFakeResolver()
	resolver.coords["M22BB"] = models.Coordinates{Longitude: -2.23, Latitude: 53.48}
	coordinator := NewCoordinator(resolver)

	addr := models.Address{Postcode: "M2 2BB"}
	got, warning := coordinator.Sync(context.Background(), "M1 1AA", addr)

	assert.Nil(t, warning)
	require.NotNil(t, got.Coordinates)
	assert.InDelta(t, -2.23, got.Coordinates.Longitude, 1e-9)
	assert.InDelta(t, 53.48, got.Coordinates.Latitude, 1e-9)
	assert.Equal(t, 1, resolver.totalCalls())
}

func TestCoordinator_Sync_MissingCoordinatesResolvesEvenWhenUnchanged(t *testing.T) {
	resolver := newFakeResolver()
	resolver.coords["M11AA"] = models.Coordinates{Longitude: -2.24, Latitude: 53.47}
	coordinator := NewCoordinator(resolver)

	addr := models.Address{Postcode: "M1 1AA"}
	got, warning := coordinator.Sync(context.Background(), "M1 1AA", addr)

	assert.Nil(t, warning)
	require.NotNil(t, got.Coordinates)
	assert.Equal(t, 1, resolver.totalCalls())
}

func TestCoordinator_Sync_NotFoundKeepsPriorCoordinates(t *testing.T) {
	resolver := newFakeResolver()
	coordinator := NewCoordinator(resolver)

	prior := &models.Coordinates{Longitude: -2.24, Latitude: 53.48}
	addr := models.Address{Postcode: "ZZ9 9ZZ", Coordinates: prior}

	got, warning := coordinator.Sync(context.Background(), "M1 1AA", addr)

	require.NotNil(t, warning)
	assert.Equal(t, "ZZ9 9ZZ", warning.Postcode)
	require.NotNil(t, got.Coordinates)
	assert.Equal(t, *prior, *got.Coordinates, "coordinates are never nulled out")
}

func TestCoordinator_Sync_TransientFailureKeepsPriorCoordinates(t *testing.T) {
	resolver := newFakeResolver()
	resolver.err = derrors.New(derrors.CategoryTransient, "geo.resolve", "lookup timed out", nil)
	coordinator := NewCoordinator(resolver)

	prior := &models.Coordinates{Longitude: -1.55, Latitude: 53.8}
	addr := models.Address{Postcode: "LS2 8JS", Coordinates: prior}

	got, warning := coordinator.Sync(context.Background(), "LS1 5HD", addr)

	require.NotNil(t, warning)
	require.NotNil(t, got.Coordinates)
	assert.Equal(t, *prior, *got.Coordinates)
}

func TestCoordinator_Sync_BlankPostcodePassesThrough(t *testing.T) {
	resolver := newFakeResolver()
	coordinator := NewCoordinator(resolver)

	addr := models.Address{Line1: "Outreach van", Postcode: "  "}
	got, warning := coordinator.Sync(context.Background(), "", addr)

	assert.Nil(t, warning)
	assert.Equal(t, addr, got)
	assert.Zero(t, resolver.totalCalls())
}

func TestCoordinator_SyncAll_MemoizesIdenticalPostcodes(t *testing.T) {
	resolver := newFakeResolver()
	resolver.coords["BS14DB"] = models.Coordinates{Longitude: -2.59, Latitude: 51.45}
	coordinator := NewCoordinator(resolver)

	updates := []AddressUpdate{
		{Address: models.Address{Line1: "Site A", Postcode: "BS1 4DB"}},
		{Address: models.Address{Line1: "Site B", Postcode: "bs14db"}},
		{Address: models.Address{Line1: "Site C", Postcode: " BS1  4DB "}},
	}

	out, warnings := coordinator.SyncAll(context.Background(), updates)

	assert.Empty(t, warnings)
	require.Len(t, out, 3)
	for _, addr := range out {
		require.NotNil(t, addr.Coordinates)
		assert.InDelta(t, -2.59, addr.Coordinates.Longitude, 1e-9)
	}
	assert.Equal(t, 1, resolver.totalCalls(), "identical postcodes share one lookup")
}

func TestCoordinator_SyncAll_EvaluatesAddressesIndependently(t *testing.T) {
	resolver := newFakeResolver()
	resolver.coords["M22BB"] = models.Coordinates{Longitude: -2.23, Latitude: 53.48}
	coordinator := NewCoordinator(resolver)

	updates := []AddressUpdate{
		{Address: models.Address{Line1: "Known", Postcode: "M2 2BB"}},
		{Address: models.Address{Line1: "Unknown", Postcode: "ZZ9 9ZZ"}},
	}

	out, warnings := coordinator.SyncAll(context.Background(), updates)

	require.Len(t, out, 2)
	assert.NotNil(t, out[0].Coordinates)
	assert.Nil(t, out[1].Coordinates)
	require.Len(t, warnings, 1)
	assert.Equal(t, "ZZ9 9ZZ", warnings[0].Postcode)
}
