package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"fyyur/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("name already exists")
)

// ShowSide names the shows column a count is grouped by.
type ShowSide string

const (
	ByVenue  ShowSide = "venue_id"
	ByArtist ShowSide = "artist_id"
)

// Counts feeds the home page.
type Counts struct {
	Venues  int `json:"venues"`
	Artists int `json:"artists"`
	Shows   int `json:"shows"`
}

// Store is everything the directory service needs from storage.
type Store interface {
	// RunInTx runs fn in one transaction; fn must use tx for every query.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (Counts, error)

	ListVenues(ctx context.Context) ([]models.Venue, error)
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	VenueNameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	CreateVenue(ctx context.Context, v *models.Venue) error
	UpdateVenue(ctx context.Context, v *models.Venue) error
	DeleteVenue(ctx context.Context, id int64) error
	SearchVenues(ctx context.Context, term string) ([]models.Venue, error)

	ListArtists(ctx context.Context) ([]models.Artist, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	ArtistNameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	CreateArtist(ctx context.Context, a *models.Artist) error
	UpdateArtist(ctx context.Context, a *models.Artist) error
	DeleteArtist(ctx context.Context, id int64) error
	SearchArtists(ctx context.Context, term string) ([]models.Artist, error)

	ListShows(ctx context.Context) ([]models.Show, error)
	ShowsByVenue(ctx context.Context, venueID int64) ([]models.Show, error)
	ShowsByArtist(ctx context.Context, artistID int64) ([]models.Show, error)
	CreateShow(ctx context.Context, s *models.Show) error
	UpcomingShowCounts(ctx context.Context, side ShowSide, ids []int64, now time.Time) (map[int64]int, error)
}

type DB struct {
	Bun *bun.DB
	tx  bun.IDB
}

var _ Store = (*DB)(nil)

func New(bunDB *bun.DB) *DB {
	return &DB{Bun: bunDB}
}

func (d *DB) q() bun.IDB {
	if d.tx != nil {
		return d.tx
	}
	return d.Bun
}

// RunInTx commits when fn returns nil and rolls back otherwise. Nested calls
// join the surrounding transaction.
func (d *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if d.tx != nil {
		return fn(ctx, d)
	}
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &DB{Bun: d.Bun, tx: &tx})
	})
}

func (d *DB) Ping(ctx context.Context) error {
	return d.Bun.PingContext(ctx)
}

// Counts → number of venues, artists and shows
func (d *DB) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	var err error
	if c.Venues, err = d.q().NewSelect().Model((*models.Venue)(nil)).Count(ctx); err != nil {
		return c, err
	}
	if c.Artists, err = d.q().NewSelect().Model((*models.Artist)(nil)).Count(ctx); err != nil {
		return c, err
	}
	if c.Shows, err = d.q().NewSelect().Model((*models.Show)(nil)).Count(ctx); err != nil {
		return c, err
	}
	return c, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// uniqueViolation maps a driver's duplicate-key error onto ErrDuplicateName.
func uniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateName
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == "23505" {
		return ErrDuplicateName
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return ErrDuplicateName
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateName
	}
	return err
}

// searchWhere filters q to rows where any of cols contains term, ignoring
// case. SQLite's LOWER and LIKE only fold ASCII, so there it leaves q
// unfiltered and reports true; the caller then matches with likeRegexp.
func (d *DB) searchWhere(q *bun.SelectQuery, term string, cols ...string) (*bun.SelectQuery, bool) {
	var cond, pattern string
	switch d.Bun.Dialect().Name() {
	case dialect.SQLite:
		return q, true
	case dialect.PG:
		cond, pattern = "? ILIKE ?", "%"+term+"%"
	default:
		cond, pattern = "LOWER(?) LIKE ?", "%"+strings.ToLower(term)+"%"
	}
	return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, col := range cols {
			q = q.WhereOr(cond, bun.Ident(col), pattern)
		}
		return q
	}), false
}

// likeRegexp behaves like a case-insensitive LIKE '%term%' with Unicode
// folding; % and _ keep their wildcard meaning.
func likeRegexp(term string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?is)")
	for _, r := range term {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.MustCompile(b.String())
}

func deleted(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
