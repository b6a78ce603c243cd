package db

import (
	"context"

	"fyyur/internal/models"
)

// ListArtists → every artist, ordered by name
func (d *DB) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists := []models.Artist{}
	err := d.q().NewSelect().
		Model(&artists).
		Order("a.name", "a.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return artists, nil
}

func (d *DB) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.q().NewSelect().
		Model(&artist).
		Where("a.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return &artist, nil
}

// ArtistNameExists reports whether another artist already uses name. A zero
// excludeID checks every artist.
func (d *DB) ArtistNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	q := d.q().NewSelect().
		Model((*models.Artist)(nil)).
		Where("a.name = ?", name)
	if excludeID != 0 {
		q = q.Where("a.id <> ?", excludeID)
	}
	return q.Exists(ctx)
}

func (d *DB) CreateArtist(ctx context.Context, a *models.Artist) error {
	_, err := d.q().NewInsert().Model(a).Exec(ctx)
	return uniqueViolation(err)
}

// UpdateArtist overwrites every column of the artist with a.ID.
func (d *DB) UpdateArtist(ctx context.Context, a *models.Artist) error {
	_, err := d.q().NewUpdate().
		Model(a).
		ExcludeColumn("id").
		WherePK().
		Exec(ctx)
	return uniqueViolation(err)
}

// DeleteArtist → remove the artist and all of its shows
func (d *DB) DeleteArtist(ctx context.Context, id int64) error {
	return d.RunInTx(ctx, func(ctx context.Context, tx Store) error {
		q := tx.(*DB).q()
		if _, err := q.NewDelete().Model((*models.Show)(nil)).Where("artist_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		res, err := q.NewDelete().Model((*models.Artist)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		return deleted(res)
	})
}

// SearchArtists → artists whose name, city or state contains term, any case
func (d *DB) SearchArtists(ctx context.Context, term string) ([]models.Artist, error) {
	artists := []models.Artist{}
	q, foldInGo := d.searchWhere(d.q().NewSelect().Model(&artists), term, "a.name", "a.city", "a.state")
	if err := q.Order("a.id").Scan(ctx); err != nil {
		return nil, err
	}
	if !foldInGo {
		return artists, nil
	}

	match := likeRegexp(term)
	found := artists[:0]
	for _, a := range artists {
		if match.MatchString(a.Name) || match.MatchString(a.City) || match.MatchString(a.State) {
			found = append(found, a)
		}
	}
	return found, nil
}
