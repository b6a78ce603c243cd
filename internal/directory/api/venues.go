package api

import (
	"errors"
	"fmt"
	"net/http"

	"fyyur/internal/directory/service"
	"fyyur/internal/forms"
	"fyyur/internal/models"
	"fyyur/internal/render"
)

type venueFormPage struct {
	Form    forms.VenueForm `json:"form"`
	Venue   *models.Venue   `json:"venue,omitempty"`
	Choices forms.Choices   `json:"choices"`
}

type searchPage struct {
	SearchTerm string                `json:"search_term"`
	Results    *service.SearchResult `json:"results"`
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Service.ListVenueAreas(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	page := render.Page{Template: "pages/venues", Data: areas}
	if len(areas) == 0 {
		page.Messages = []string{"No venues exist"}
	}
	h.render(w, r, http.StatusOK, page)
}

func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, service.KindVenue, "pages/search_venues")
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, kind service.Kind, template string) {
	values, err := postValues(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest)
		return
	}
	term := values.Get("search_term")
	results, err := h.Service.Search(r.Context(), kind, term)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, render.Page{
		Template: template,
		Data:     searchPage{SearchTerm: term, Results: results},
	})
}

func (h *Handler) ShowVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	venue, err := h.Service.GetVenue(r.Context(), id)
	if err != nil {
		h.readError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, render.Page{Template: "pages/show_venue", Data: venue})
}

func (h *Handler) NewVenueForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.Page{
		Template: "forms/new_venue",
		Data:     venueFormPage{Choices: forms.FormChoices()},
	})
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	values, err := postValues(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest)
		return
	}
	form := forms.VenueFormFromValues(values)

	venue, err := h.Service.CreateVenue(r.Context(), form)
	if err != nil {
		page := render.Page{
			Template: "forms/new_venue",
			Data:     venueFormPage{Form: form, Choices: forms.FormChoices()},
		}
		if fields, ok := formErrors(err); ok {
			page.FormErrors = fields
			h.render(w, r, http.StatusBadRequest, page)
			return
		}
		if errors.Is(err, service.ErrNameTaken) {
			page.Messages = []string{"venue name reserved"}
			h.render(w, r, http.StatusConflict, page)
			return
		}
		page.Messages = []string{fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name)}
		h.render(w, r, http.StatusInternalServerError, page)
		return
	}

	h.flash(r, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
	redirect(w, r, fmt.Sprintf("/venues/%d", venue.ID))
}

func (h *Handler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	venue, err := h.Service.FindVenue(r.Context(), id)
	if err != nil {
		h.readError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, render.Page{
		Template: "forms/edit_venue",
		Data: venueFormPage{
			Form:    forms.VenueFormFromModel(venue),
			Venue:   venue,
			Choices: forms.FormChoices(),
		},
	})
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(r, "Venue not found")
		redirect(w, r, "/")
		return
	}
	values, err := postValues(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest)
		return
	}
	form := forms.VenueFormFromValues(values)

	_, err = h.Service.UpdateVenue(r.Context(), id, form)
	switch {
	case err == nil:
		h.flash(r, "Successfully Updated!")
		redirect(w, r, fmt.Sprintf("/venues/%d", id))
	case errors.Is(err, service.ErrNotFound):
		h.flash(r, "Venue not found")
		redirect(w, r, "/")
	case errors.Is(err, service.ErrNameTaken):
		h.render(w, r, http.StatusConflict, render.Page{
			Template: "forms/edit_venue",
			Messages: []string{"venue name reserved"},
			Data:     venueFormPage{Form: form, Venue: &models.Venue{ID: id}, Choices: forms.FormChoices()},
		})
	default:
		if fields, ok := formErrors(err); ok {
			h.render(w, r, http.StatusBadRequest, render.Page{
				Template:   "forms/edit_venue",
				FormErrors: fields,
				Data:       venueFormPage{Form: form, Venue: &models.Venue{ID: id}, Choices: forms.FormChoices()},
			})
			return
		}
		h.flash(r, "Ops! something went wrong the update was unsuccessful!")
		redirect(w, r, fmt.Sprintf("/venues/%d", id))
	}
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(r, "Venue not found")
		redirect(w, r, "/")
		return
	}

	_, err := h.Service.DeleteVenue(r.Context(), id)
	switch {
	case err == nil:
		h.flash(r, "Venue is successfully deleted with all of its shows.")
		redirect(w, r, "/")
	case errors.Is(err, service.ErrNotFound):
		h.flash(r, "Venue not found")
		redirect(w, r, "/")
	default:
		h.flash(r, "Venue is not deleted, exception occurred!")
		redirect(w, r, fmt.Sprintf("/venues/%d", id))
	}
}
