package models

import (
	"github.com/uptrace/bun"
)

type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull,unique" json:"name"`
	Genres             []string `bun:"genres" json:"genres"`
	City               string   `bun:"city,notnull" json:"city"`
	State              string   `bun:"state,notnull" json:"state"`
	Phone              string   `bun:"phone" json:"phone"`
	Website            string   `bun:"website" json:"website"`
	FacebookLink       string   `bun:"facebook_link" json:"facebook_link"`
	ImageLink          string   `bun:"image_link" json:"image_link"`
	SeekingVenue       bool     `bun:"seeking_venue,notnull" json:"seeking_venue"`
	SeekingDescription string   `bun:"seeking_description" json:"seeking_description"`
}
