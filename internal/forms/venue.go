package forms

import (
	"net/url"

	"fyyur/internal/models"
)

type VenueForm struct {
	Name               string   `form:"name" json:"name" validate:"required"`
	City               string   `form:"city" json:"city" validate:"required"`
	State              string   `form:"state" json:"state" validate:"required,state"`
	Address            string   `form:"address" json:"address" validate:"required"`
	Phone              string   `form:"phone" json:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url"`
	Genres             []string `form:"genres" json:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url"`
	SeekingTalent      bool     `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description"`
}

func VenueFormFromValues(values url.Values) VenueForm {
	return VenueForm{
		Name:               value(values, "name"),
		City:               value(values, "city"),
		State:              value(values, "state"),
		Address:            value(values, "address"),
		Phone:              value(values, "phone"),
		ImageLink:          value(values, "image_link"),
		Genres:             list(values, "genres"),
		FacebookLink:       value(values, "facebook_link"),
		WebsiteLink:        value(values, "website_link"),
		SeekingTalent:      checkbox(values, "seeking_talent"),
		SeekingDescription: value(values, "seeking_description"),
	}
}

// VenueFormFromModel pre-fills the edit form.
func VenueFormFromModel(v *models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             append([]string(nil), v.Genres...),
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func (f VenueForm) Validate() Errors {
	return check(f)
}

// Apply overwrites every editable field of v.
func (f VenueForm) Apply(v *models.Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.Genres = append([]string(nil), f.Genres...)
	v.FacebookLink = f.FacebookLink
	v.Website = f.WebsiteLink
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}
