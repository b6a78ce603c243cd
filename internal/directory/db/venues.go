package db

import (
	"context"

	"fyyur/internal/models"
)

// ListVenues → every venue, ordered so that venues in the same area are adjacent
func (d *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues := []models.Venue{}
	err := d.q().NewSelect().
		Model(&venues).
		Order("v.city", "v.state", "v.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (d *DB) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.q().NewSelect().
		Model(&venue).
		Where("v.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return &venue, nil
}

// VenueNameExists reports whether another venue already uses name. A zero
// excludeID checks every venue.
func (d *DB) VenueNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	q := d.q().NewSelect().
		Model((*models.Venue)(nil)).
		Where("v.name = ?", name)
	if excludeID != 0 {
		q = q.Where("v.id <> ?", excludeID)
	}
	return q.Exists(ctx)
}

func (d *DB) CreateVenue(ctx context.Context, v *models.Venue) error {
	_, err := d.q().NewInsert().Model(v).Exec(ctx)
	return uniqueViolation(err)
}

// UpdateVenue overwrites every column of the venue with v.ID.
func (d *DB) UpdateVenue(ctx context.Context, v *models.Venue) error {
	_, err := d.q().NewUpdate().
		Model(v).
		ExcludeColumn("id").
		WherePK().
		Exec(ctx)
	return uniqueViolation(err)
}

// DeleteVenue → remove the venue and all of its shows
func (d *DB) DeleteVenue(ctx context.Context, id int64) error {
	return d.RunInTx(ctx, func(ctx context.Context, tx Store) error {
		q := tx.(*DB).q()
		if _, err := q.NewDelete().Model((*models.Show)(nil)).Where("venue_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		res, err := q.NewDelete().Model((*models.Venue)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		return deleted(res)
	})
}

// SearchVenues → venues whose name, city or state contains term, any case
func (d *DB) SearchVenues(ctx context.Context, term string) ([]models.Venue, error) {
	venues := []models.Venue{}
	q, foldInGo := d.searchWhere(d.q().NewSelect().Model(&venues), term, "v.name", "v.city", "v.state")
	if err := q.Order("v.id").Scan(ctx); err != nil {
		return nil, err
	}
	if !foldInGo {
		return venues, nil
	}

	match := likeRegexp(term)
	found := venues[:0]
	for _, v := range venues {
		if match.MatchString(v.Name) || match.MatchString(v.City) || match.MatchString(v.State) {
			found = append(found, v)
		}
	}
	return found, nil
}
