package models

import (
	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull,unique" json:"name"`
	Genres             []string `bun:"genres" json:"genres"`
	Address            string   `bun:"address,notnull" json:"address"`
	City               string   `bun:"city,notnull" json:"city"`
	State              string   `bun:"state,notnull" json:"state"`
	Phone              string   `bun:"phone" json:"phone"`
	Website            string   `bun:"website" json:"website"`
	FacebookLink       string   `bun:"facebook_link" json:"facebook_link"`
	ImageLink          string   `bun:"image_link" json:"image_link"`
	SeekingTalent      bool     `bun:"seeking_talent,notnull" json:"seeking_talent"`
	SeekingDescription string   `bun:"seeking_description" json:"seeking_description"`
}
