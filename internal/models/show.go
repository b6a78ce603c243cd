package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Show joins one venue and one artist at a start time. Whether it is past or
// upcoming is never stored; it depends on the clock at read time.
type Show struct {
	bun.BaseModel `bun:"table:shows,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	VenueID   int64     `bun:"venue_id,notnull" json:"venue_id"`
	ArtistID  int64     `bun:"artist_id,notnull" json:"artist_id"`
	StartTime time.Time `bun:"start_time,notnull" json:"start_time"`

	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id" json:"-"`
	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id" json:"-"`
}
