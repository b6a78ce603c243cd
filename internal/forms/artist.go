package forms

import (
	"net/url"

	"fyyur/internal/models"
)

type ArtistForm struct {
	Name               string   `form:"name" json:"name" validate:"required"`
	City               string   `form:"city" json:"city" validate:"required"`
	State              string   `form:"state" json:"state" validate:"required,state"`
	Phone              string   `form:"phone" json:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url"`
	Genres             []string `form:"genres" json:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url"`
	SeekingVenue       bool     `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description"`
}

func ArtistFormFromValues(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               value(values, "name"),
		City:               value(values, "city"),
		State:              value(values, "state"),
		Phone:              value(values, "phone"),
		ImageLink:          value(values, "image_link"),
		Genres:             list(values, "genres"),
		FacebookLink:       value(values, "facebook_link"),
		WebsiteLink:        value(values, "website_link"),
		SeekingVenue:       checkbox(values, "seeking_venue"),
		SeekingDescription: value(values, "seeking_description"),
	}
}

func ArtistFormFromModel(a *models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             append([]string(nil), a.Genres...),
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (f ArtistForm) Validate() Errors {
	return check(f)
}

func (f ArtistForm) Apply(a *models.Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.ImageLink = f.ImageLink
	a.Genres = append([]string(nil), f.Genres...)
	a.FacebookLink = f.FacebookLink
	a.Website = f.WebsiteLink
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}
