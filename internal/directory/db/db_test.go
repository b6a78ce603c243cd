package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/database/dbtest"
	"fyyur/internal/directory/db"
	"fyyur/internal/models"
)

var now = time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *db.DB {
	return db.New(dbtest.New(t))
}

func venue(name, city, state string) *models.Venue {
	return &models.Venue{
		Name:    name,
		City:    city,
		State:   state,
		Address: "1 Main St",
		Genres:  []string{"Jazz", "Blues"},
	}
}

func artist(name, city, state string) *models.Artist {
	return &models.Artist{Name: name, City: city, State: state, Genres: []string{"Jazz"}}
}

func TestCreateAndGetVenue(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	v := venue("The Blue Note", "New York", "NY")
	v.SeekingTalent = true
	require.NoError(t, store.CreateVenue(ctx, v))
	assert.NotZero(t, v.ID)

	got, err := store.GetVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Blue Note", got.Name)
	assert.Equal(t, []string{"Jazz", "Blues"}, got.Genres)
	assert.True(t, got.SeekingTalent)

	_, err = store.GetVenue(ctx, v.ID+100)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestDuplicateNameMapsToErrDuplicateName(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.CreateVenue(ctx, venue("Duplicate Hall", "Austin", "TX")))
	err := store.CreateVenue(ctx, venue("Duplicate Hall", "Dallas", "TX"))
	assert.ErrorIs(t, err, db.ErrDuplicateName)

	require.NoError(t, store.CreateArtist(ctx, artist("Echo", "Austin", "TX")))
	err = store.CreateArtist(ctx, artist("Echo", "Austin", "TX"))
	assert.ErrorIs(t, err, db.ErrDuplicateName)

	n, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n.Venues)
	assert.Equal(t, 1, n.Artists)
}

func TestNameExists(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	v := venue("Hall", "Austin", "TX")
	require.NoError(t, store.CreateVenue(ctx, v))

	exists, err := store.VenueNameExists(ctx, "Hall", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.VenueNameExists(ctx, "Hall", v.ID)
	require.NoError(t, err)
	assert.False(t, exists, "a venue keeping its own name is not a conflict")

	exists, err = store.ArtistNameExists(ctx, "Hall", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateVenueOverwritesFields(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	v := venue("Hall", "Austin", "TX")
	v.Phone = "512-555-0100"
	require.NoError(t, store.CreateVenue(ctx, v))

	v.Name = "Big Hall"
	v.Phone = ""
	v.Genres = []string{"Folk"}
	require.NoError(t, store.UpdateVenue(ctx, v))

	got, err := store.GetVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Big Hall", got.Name)
	assert.Empty(t, got.Phone)
	assert.Equal(t, []string{"Folk"}, got.Genres)
}

func TestUpdateOntoTakenName(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.CreateArtist(ctx, artist("One", "Austin", "TX")))
	two := artist("Two", "Austin", "TX")
	require.NoError(t, store.CreateArtist(ctx, two))

	two.Name = "One"
	assert.ErrorIs(t, store.UpdateArtist(ctx, two), db.ErrDuplicateName)
}

func TestListVenuesOrderedByArea(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	for _, v := range []*models.Venue{
		venue("C", "San Francisco", "CA"),
		venue("A", "New York", "NY"),
		venue("B", "San Francisco", "CA"),
	} {
		require.NoError(t, store.CreateVenue(ctx, v))
	}

	venues, err := store.ListVenues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 3)
	assert.Equal(t, "A", venues[0].Name)
	assert.Equal(t, "C", venues[1].Name)
	assert.Equal(t, "B", venues[2].Name)
}

func TestListEmpty(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	venues, err := store.ListVenues(ctx)
	require.NoError(t, err)
	assert.Empty(t, venues)

	artists, err := store.ListArtists(ctx)
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.CreateVenue(ctx, venue("The Musical Hop", "San Francisco", "CA")))
	require.NoError(t, store.CreateVenue(ctx, venue("Park Square Live Music & Coffee", "San Francisco", "CA")))
	require.NoError(t, store.CreateVenue(ctx, venue("The Dueling Pianos Bar", "New York", "NY")))

	venues, err := store.SearchVenues(ctx, "MUSIC")
	require.NoError(t, err)
	assert.Len(t, venues, 2)

	venues, err = store.SearchVenues(ctx, "ny")
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "The Dueling Pianos Bar", venues[0].Name)

	venues, err = store.SearchVenues(ctx, "")
	require.NoError(t, err)
	assert.Len(t, venues, 3)

	venues, err = store.SearchVenues(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, venues)
}

func TestSearchFoldsAccentedLetters(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.CreateVenue(ctx, venue("ÉCOLE Hall", "Montréal", "CA")))
	require.NoError(t, store.CreateArtist(ctx, artist("Öskar Nilsson", "Austin", "TX")))

	venues, err := store.SearchVenues(ctx, "école")
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "ÉCOLE Hall", venues[0].Name)

	venues, err = store.SearchVenues(ctx, "MONTRÉAL")
	require.NoError(t, err)
	assert.Len(t, venues, 1)

	artists, err := store.SearchArtists(ctx, "öSKAR")
	require.NoError(t, err)
	assert.Len(t, artists, 1)
}

func TestSearchTreatsLikeWildcards(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.CreateVenue(ctx, venue("The Musical Hop", "San Francisco", "CA")))
	require.NoError(t, store.CreateVenue(ctx, venue("Bar (Live)", "New York", "NY")))

	venues, err := store.SearchVenues(ctx, "mus%hop")
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "The Musical Hop", venues[0].Name)

	venues, err = store.SearchVenues(ctx, "(live)")
	require.NoError(t, err)
	assert.Len(t, venues, 1)
}

func TestSearchArtists(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.CreateArtist(ctx, artist("Guns N Petals", "San Francisco", "CA")))
	require.NoError(t, store.CreateArtist(ctx, artist("Matt Quevedo", "New York", "NY")))

	artists, err := store.SearchArtists(ctx, "sAn")
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Guns N Petals", artists[0].Name)
}

func seedShows(t *testing.T, store *db.DB) (*models.Venue, *models.Artist) {
	t.Helper()
	ctx := context.Background()

	v := venue("Hall", "Austin", "TX")
	a := artist("Band", "Austin", "TX")
	require.NoError(t, store.CreateVenue(ctx, v))
	require.NoError(t, store.CreateArtist(ctx, a))

	for _, start := range []time.Time{
		now.Add(-48 * time.Hour),
		now,
		now.Add(time.Hour),
		now.Add(72 * time.Hour),
	} {
		require.NoError(t, store.CreateShow(ctx, &models.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: start}))
	}
	return v, a
}

func TestShowsLoadTheOtherSide(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	v, a := seedShows(t, store)

	shows, err := store.ShowsByVenue(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, shows, 4)
	require.NotNil(t, shows[0].Artist)
	assert.Equal(t, "Band", shows[0].Artist.Name)
	assert.True(t, shows[0].StartTime.Equal(now.Add(-48*time.Hour)))

	shows, err = store.ShowsByArtist(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, shows, 4)
	require.NotNil(t, shows[3].Venue)
	assert.Equal(t, "Hall", shows[3].Venue.Name)

	shows, err = store.ListShows(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 4)
	assert.NotNil(t, shows[0].Venue)
	assert.NotNil(t, shows[0].Artist)
}

func TestUpcomingShowCountsIsStrict(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	v, a := seedShows(t, store)

	counts, err := store.UpcomingShowCounts(ctx, db.ByVenue, []int64{v.ID, v.ID + 1}, now)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{v.ID: 2}, counts)

	counts, err = store.UpcomingShowCounts(ctx, db.ByArtist, []int64{a.ID}, now)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[a.ID])

	counts, err = store.UpcomingShowCounts(ctx, db.ByArtist, nil, now)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestDeleteVenueRemovesItsShows(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	v, a := seedShows(t, store)

	require.NoError(t, store.DeleteVenue(ctx, v.ID))

	_, err := store.GetVenue(ctx, v.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	shows, err := store.ShowsByArtist(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, shows)

	assert.ErrorIs(t, store.DeleteVenue(ctx, v.ID), db.ErrNotFound)
}

func TestDeleteArtist(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	_, a := seedShows(t, store)

	require.NoError(t, store.DeleteArtist(ctx, a.ID))

	n, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, db.Counts{Venues: 1, Artists: 0, Shows: 0}, n)
}

func TestRunInTxRollsBack(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		if err := tx.CreateVenue(ctx, venue("Ghost", "Austin", "TX")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := store.VenueNameExists(ctx, "Ghost", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunInTxCommits(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	err := store.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		return tx.CreateArtist(ctx, artist("Kept", "Austin", "TX"))
	})
	require.NoError(t, err)

	artists, err := store.ListArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Kept", artists[0].Name)
}

func TestPing(t *testing.T) {
	assert.NoError(t, setupTestDB(t).Ping(context.Background()))
}
