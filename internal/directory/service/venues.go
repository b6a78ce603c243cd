package service

import (
	"context"
	"fmt"

	"fyyur/internal/directory/db"
	"fyyur/internal/forms"
	"fyyur/internal/models"
)

// ListVenueAreas groups every venue by city and state, with each venue's
// number of upcoming shows.
func (s *Service) ListVenueAreas(ctx context.Context) ([]Area, error) {
	venues, err := s.DB.ListVenues(ctx)
	if err != nil {
		return nil, s.storageErr("list venues", err)
	}

	ids := make([]int64, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	counts, err := s.DB.UpcomingShowCounts(ctx, db.ByVenue, ids, s.now())
	if err != nil {
		return nil, s.storageErr("count upcoming shows", err)
	}
	return GroupByArea(venues, counts), nil
}

// FindVenue returns the stored venue, for pre-filling its edit form.
func (s *Service) FindVenue(ctx context.Context, id int64) (*models.Venue, error) {
	venue, err := s.DB.GetVenue(ctx, id)
	if err != nil {
		return nil, s.storageErr("get venue", err)
	}
	return venue, nil
}

// GetVenue returns the venue with its shows split into past and upcoming.
func (s *Service) GetVenue(ctx context.Context, id int64) (*VenueDetail, error) {
	venue, err := s.FindVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.DB.ShowsByVenue(ctx, id)
	if err != nil {
		return nil, s.storageErr("list venue shows", err)
	}

	past, upcoming := PartitionShows(shows, s.now())
	return &VenueDetail{
		Venue:              *venue,
		PastShows:          s.showEntries(past),
		UpcomingShows:      s.showEntries(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *Service) CreateVenue(ctx context.Context, form forms.VenueForm) (*models.Venue, error) {
	if err := validationError(form.Validate()); err != nil {
		return nil, err
	}

	venue := &models.Venue{}
	form.Apply(venue)
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		taken, err := tx.VenueNameExists(ctx, venue.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		return tx.CreateVenue(ctx, venue)
	})
	if err != nil {
		return nil, s.storageErr(fmt.Sprintf("create venue %q", form.Name), err)
	}

	s.publish(ctx, string(KindVenue), models.ListingCreated, venue.ID, venue.Name)
	return venue, nil
}

// UpdateVenue overwrites venue id with the form. A missing venue is reported
// before the form is validated.
func (s *Service) UpdateVenue(ctx context.Context, id int64, form forms.VenueForm) (*models.Venue, error) {
	var venue *models.Venue
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		var err error
		if venue, err = tx.GetVenue(ctx, id); err != nil {
			return err
		}
		if err := validationError(form.Validate()); err != nil {
			return err
		}
		taken, err := tx.VenueNameExists(ctx, form.Name, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		form.Apply(venue)
		return tx.UpdateVenue(ctx, venue)
	})
	if err != nil {
		return nil, s.storageErr(fmt.Sprintf("update venue %d", id), err)
	}

	s.publish(ctx, string(KindVenue), models.ListingUpdated, venue.ID, venue.Name)
	return venue, nil
}

// DeleteVenue removes the venue and its shows, returning the deleted venue.
func (s *Service) DeleteVenue(ctx context.Context, id int64) (*models.Venue, error) {
	var venue *models.Venue
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx db.Store) error {
		var err error
		if venue, err = tx.GetVenue(ctx, id); err != nil {
			return err
		}
		return tx.DeleteVenue(ctx, id)
	})
	if err != nil {
		return nil, s.storageErr(fmt.Sprintf("delete venue %d", id), err)
	}

	s.publish(ctx, string(KindVenue), models.ListingDeleted, venue.ID, venue.Name)
	return venue, nil
}
