package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randytsao24/verdigo/internal/models"
	"github.com/randytsao24/verdigo/internal/planner"
	"github.com/randytsao24/verdigo/internal/transit"
)

func testSession(id string) *planner.Session {
	return &planner.Session{
		ID:      id,
		From:    models.Place{Coordinate: models.Coordinate{Lat: 22.5851, Lon: 88.3468}, DisplayName: "Howrah Bridge", Query: "Howrah Bridge"},
		To:      models.Place{Coordinate: models.Coordinate{Lat: 22.5448, Lon: 88.3426}, DisplayName: "Victoria Memorial", Query: "Victoria Memorial"},
		Mode:    models.ModeTransit,
		Profile: models.ProfileCar,
		Routes: planner.RouteSet{Candidates: []planner.Candidate{
			{Path: 1, Geometry: orb.LineString{{88.3468, 22.5851}, {88.35, 22.56}, {88.3426, 22.5448}}, DistanceKm: 5.23, DurationMin: 12, CO2Grams: 356, EcoScore: 75, Swatch: planner.Palette[1]},
			{Path: 0, Geometry: orb.LineString{{88.3468, 22.5851}, {88.3426, 22.5448}}, DistanceKm: 4.9, DurationMin: 11, CO2Grams: 333, EcoScore: 75, Swatch: planner.Palette[0]},
		}},
		Advisories:     []transit.Advisory{{ID: "a1", Routes: []string{"A"}, Header: "Delays"}},
		StraightLineKm: 4.49,
		CreatedAt:      time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC),
	}
}

type storeCase struct {
	name  string
	store Store
}

func stores(t *testing.T) []storeCase {
	t.Helper()

	mem := NewMemoryStore(time.Minute)
	t.Cleanup(func() { mem.Close() })

	mr := miniredis.RunT(t)
	rdb, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	rs := NewRedisStore(rdb, time.Minute)
	t.Cleanup(func() { rs.Close() })

	return []storeCase{{"memory", mem}, {"redis", rs}}
}

func TestStoreRoundTrip(t *testing.T) {
	for _, tc := range stores(t) {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			want := testSession("11111111-1111-1111-1111-111111111111")

			require.NoError(t, tc.store.Save(ctx, want))
			got, err := tc.store.Load(ctx, want.ID)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestStoreUnknownID(t *testing.T) {
	for _, tc := range stores(t) {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.store.Load(context.Background(), "does-not-exist")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSelect(t *testing.T) {
	for _, tc := range stores(t) {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			s := testSession("22222222-2222-2222-2222-222222222222")
			require.NoError(t, tc.store.Save(ctx, s))

			updated, err := Select(ctx, tc.store, s.ID, 1)
			require.NoError(t, err)
			assert.Equal(t, 1, updated.Routes.Selected)

			reloaded, err := tc.store.Load(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, reloaded.Routes.Selected)

			_, err = Select(ctx, tc.store, s.ID, 2)
			assert.ErrorIs(t, err, planner.ErrSelectionOutOfRange)

			reloaded, err = tc.store.Load(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, reloaded.Routes.Selected, "failed selection leaves the stored session alone")

			_, err = Select(ctx, tc.store, "missing", 0)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStoreDoesNotAlias(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	s := testSession("33333333-3333-3333-3333-333333333333")
	require.NoError(t, store.Save(ctx, s))

	s.Routes.Candidates[0].EcoScore = 0
	s.Routes.Candidates[0].Geometry[0] = orb.Point{0, 0}
	s.Routes.Selected = 1

	got, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, got.Routes.Candidates[0].EcoScore)
	assert.Equal(t, orb.Point{88.3468, 22.5851}, got.Routes.Candidates[0].Geometry[0])
	assert.Equal(t, 0, got.Routes.Selected)
	assert.Equal(t, 1, store.Len())

	// a loaded copy can't reach back into the store either
	got.Routes.Candidates[1].Geometry[1] = orb.Point{1, 1}
	again, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{88.3426, 22.5448}, again.Routes.Candidates[1].Geometry[1])
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	s := testSession("44444444-4444-4444-4444-444444444444")
	require.NoError(t, store.Save(ctx, s))
	time.Sleep(40 * time.Millisecond)

	_, err := store.Load(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreKeyAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	store := NewRedisStore(rdb, 30*time.Minute)
	defer store.Close()

	s := testSession("55555555-5555-5555-5555-555555555555")
	require.NoError(t, store.Save(context.Background(), s))

	key := "verdigo:session:" + s.ID
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 30*time.Minute, mr.TTL(key))

	mr.FastForward(31 * time.Minute)
	_, err = store.Load(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	store := NewRedisStore(rdb, time.Minute)
	defer store.Close()

	require.NoError(t, mr.Set("verdigo:session:bad", "{not json"))
	_, err = store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestConnectBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-url")
	assert.Error(t, err)
}
