package service

import (
	"context"
	"errors"

	"fyyur/internal/directory/db"
	"fyyur/internal/forms"
	"fyyur/internal/models"
)

func (s *Service) ListShows(ctx context.Context) ([]ShowEntry, error) {
	shows, err := s.DB.ListShows(ctx)
	if err != nil {
		return nil, s.storageErr("list shows", err)
	}
	return s.showEntries(shows), nil
}

// CreateShow books an artist at a venue. The venue and artist are checked
// separately so that each missing one gets its own field error.
func (s *Service) CreateShow(ctx context.Context, form forms.ShowForm) (*models.Show, error) {
	in, errs := form.Parse(s.location())
	if err := validationError(errs); err != nil {
		return nil, err
	}

	show := &models.Show{VenueID: in.VenueID, ArtistID: in.ArtistID, StartTime: in.StartTime}
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		missing := forms.Errors{}
		if _, err := tx.GetVenue(ctx, in.VenueID); errors.Is(err, db.ErrNotFound) {
			missing.Add("venue_id", "the Venue ID is wrong")
		} else if err != nil {
			return err
		}
		if _, err := tx.GetArtist(ctx, in.ArtistID); errors.Is(err, db.ErrNotFound) {
			missing.Add("artist_id", "the Artist ID is wrong")
		} else if err != nil {
			return err
		}
		if err := validationError(missing); err != nil {
			return err
		}
		return tx.CreateShow(ctx, show)
	})
	if err != nil {
		return nil, s.storageErr("create show", err)
	}

	s.publish(ctx, "show", models.ListingCreated, show.ID, "")
	return show, nil
}
