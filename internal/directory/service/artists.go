package service

import (
	"context"
	"fmt"

	"fyyur/internal/directory/db"
	"fyyur/internal/forms"
	"fyyur/internal/models"
)

// ListArtists returns every artist's id and name.
func (s *Service) ListArtists(ctx context.Context) ([]ArtistSummary, error) {
	artists, err := s.DB.ListArtists(ctx)
	if err != nil {
		return nil, s.storageErr("list artists", err)
	}

	out := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

// FindArtist returns the stored artist, for pre-filling its edit form.
func (s *Service) FindArtist(ctx context.Context, id int64) (*models.Artist, error) {
	artist, err := s.DB.GetArtist(ctx, id)
	if err != nil {
		return nil, s.storageErr("get artist", err)
	}
	return artist, nil
}

// GetArtist returns the artist with its shows split into past and upcoming.
func (s *Service) GetArtist(ctx context.Context, id int64) (*ArtistDetail, error) {
	artist, err := s.FindArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.DB.ShowsByArtist(ctx, id)
	if err != nil {
		return nil, s.storageErr("list artist shows", err)
	}

	past, upcoming := PartitionShows(shows, s.now())
	return &ArtistDetail{
		Artist:             *artist,
		PastShows:          s.showEntries(past),
		UpcomingShows:      s.showEntries(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *Service) CreateArtist(ctx context.Context, form forms.ArtistForm) (*models.Artist, error) {
	if err := validationError(form.Validate()); err != nil {
		return nil, err
	}

	artist := &models.Artist{}
	form.Apply(artist)
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		taken, err := tx.ArtistNameExists(ctx, artist.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		return tx.CreateArtist(ctx, artist)
	})
	if err != nil {
		return nil, s.storageErr(fmt.Sprintf("create artist %q", form.Name), err)
	}

	s.publish(ctx, string(KindArtist), models.ListingCreated, artist.ID, artist.Name)
	return artist, nil
}

// UpdateArtist overwrites artist id with the form. A missing artist is reported
// before the form is validated.
func (s *Service) UpdateArtist(ctx context.Context, id int64, form forms.ArtistForm) (*models.Artist, error) {
	var artist *models.Artist
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		var err error
		if artist, err = tx.GetArtist(ctx, id); err != nil {
			return err
		}
		if err := validationError(form.Validate()); err != nil {
			return err
		}
		taken, err := tx.ArtistNameExists(ctx, form.Name, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		form.Apply(artist)
		return tx.UpdateArtist(ctx, artist)
	})
	if err != nil {
		return nil, s.storageErr(fmt.Sprintf("update artist %d", id), err)
	}

	s.publish(ctx, string(KindArtist), models.ListingUpdated, artist.ID, artist.Name)
	return artist, nil
}

// DeleteArtist removes the artist and its shows, returning the deleted artist.
func (s *Service) DeleteArtist(ctx context.Context, id int64) (*models.Artist, error) {
	var artist *models.Artist
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		var err error
		if artist, err = tx.GetArtist(ctx, id); err != nil {
			return err
		}
		return tx.DeleteArtist(ctx, id)
	})
	if err != nil {
		return nil, s.storageErr(fmt.Sprintf("delete artist %d", id), err)
	}

	s.publish(ctx, string(KindArtist), models.ListingDeleted, artist.ID, artist.Name)
	return artist, nil
}
