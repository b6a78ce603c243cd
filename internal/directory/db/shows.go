package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"fyyur/internal/models"
)

// ListShows → every show with its venue and artist loaded
func (d *DB) ListShows(ctx context.Context) ([]models.Show, error) {
	shows := []models.Show{}
	err := d.q().NewSelect().
		Model(&shows).
		Relation("Venue").
		Relation("Artist").
		Order("s.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// ShowsByVenue → shows at a venue, each with its artist loaded
func (d *DB) ShowsByVenue(ctx context.Context, venueID int64) ([]models.Show, error) {
	shows := []models.Show{}
	err := d.q().NewSelect().
		Model(&shows).
		Relation("Artist").
		Where("s.venue_id = ?", venueID).
		Order("s.start_time", "s.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// ShowsByArtist → shows by an artist, each with its venue loaded
func (d *DB) ShowsByArtist(ctx context.Context, artistID int64) ([]models.Show, error) {
	shows := []models.Show{}
	err := d.q().NewSelect().
		Model(&shows).
		Relation("Venue").
		Where("s.artist_id = ?", artistID).
		Order("s.start_time", "s.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// CreateShow stores s with its start time in UTC, truncated to the second.
func (d *DB) CreateShow(ctx context.Context, s *models.Show) error {
	s.StartTime = s.StartTime.UTC().Truncate(time.Second)
	_, err := d.q().NewInsert().Model(s).Exec(ctx)
	return err
}

type showCount struct {
	ID  int64 `bun:"id"`
	Num int   `bun:"num"`
}

// UpcomingShowCounts → number of shows starting strictly after now, keyed by
// the venue or artist id on side. Ids without upcoming shows are absent.
func (d *DB) UpcomingShowCounts(ctx context.Context, side ShowSide, ids []int64, now time.Time) (map[int64]int, error) {
	counts := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	col := bun.Ident(string(side))
	var rows []showCount
	err := d.q().NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("? AS id", col).
		ColumnExpr("COUNT(*) AS num").
		Where("? IN (?)", col, bun.In(ids)).
		Where("start_time > ?", now.UTC().Truncate(time.Second)).
		GroupExpr("?", col).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.ID] = r.Num
	}
	return counts, nil
}
