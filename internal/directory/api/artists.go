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

type artistFormPage struct {
	Form    forms.ArtistForm `json:"form"`
	Artist  *models.Artist   `json:"artist,omitempty"`
	Choices forms.Choices    `json:"choices"`
}

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Service.ListArtists(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	page := render.Page{Template: "pages/artists", Data: artists}
	if len(artists) == 0 {
		page.Messages = []string{"No artists exist"}
	}
	h.render(w, r, http.StatusOK, page)
}

func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, service.KindArtist, "pages/search_artists")
}

func (h *Handler) ShowArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	artist, err := h.Service.GetArtist(r.Context(), id)
	if err != nil {
		h.readError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, render.Page{Template: "pages/show_artist", Data: artist})
}

func (h *Handler) NewArtistForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.Page{
		Template: "forms/new_artist",
		Data:     artistFormPage{Choices: forms.FormChoices()},
	})
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	values, err := postValues(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest)
		return
	}
	form := forms.ArtistFormFromValues(values)

	artist, err := h.Service.CreateArtist(r.Context(), form)
	if err != nil {
		page := render.Page{
			Template: "forms/new_artist",
			Data:     artistFormPage{Form: form, Choices: forms.FormChoices()},
		}
		if fields, ok := formErrors(err); ok {
			page.FormErrors = fields
			h.render(w, r, http.StatusBadRequest, page)
			return
		}
		if errors.Is(err, service.ErrNameTaken) {
			page.Messages = []string{"artist name reserved"}
			h.render(w, r, http.StatusConflict, page)
			return
		}
		page.Messages = []string{fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name)}
		h.render(w, r, http.StatusInternalServerError, page)
		return
	}

	h.flash(r, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
	redirect(w, r, fmt.Sprintf("/artists/%d", artist.ID))
}

func (h *Handler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	artist, err := h.Service.FindArtist(r.Context(), id)
	if err != nil {
		h.readError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, render.Page{
		Template: "forms/edit_artist",
		Data: artistFormPage{
			Form:    forms.ArtistFormFromModel(artist),
			Artist:  artist,
			Choices: forms.FormChoices(),
		},
	})
}

func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(r, "Artist not found")
		redirect(w, r, "/")
		return
	}
	values, err := postValues(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest)
		return
	}
	form := forms.ArtistFormFromValues(values)

	_, err = h.Service.UpdateArtist(r.Context(), id, form)
	switch {
	case err == nil:
		h.flash(r, "Successfully Updated!")
		redirect(w, r, fmt.Sprintf("/artists/%d", id))
	case errors.Is(err, service.ErrNotFound):
		h.flash(r, "Artist not found")
		redirect(w, r, "/")
	case errors.Is(err, service.ErrNameTaken):
		h.render(w, r, http.StatusConflict, render.Page{
			Template: "forms/edit_artist",
			Messages: []string{"artist name reserved"},
			Data:     artistFormPage{Form: form, Artist: &models.Artist{ID: id}, Choices: forms.FormChoices()},
		})
	default:
		if fields, ok := formErrors(err); ok {
			h.render(w, r, http.StatusBadRequest, render.Page{
				Template:   "forms/edit_artist",
				FormErrors: fields,
				Data:       artistFormPage{Form: form, Artist: &models.Artist{ID: id}, Choices: forms.FormChoices()},
			})
			return
		}
		h.flash(r, "Ops! something went wrong the update was unsuccessful!")
		redirect(w, r, fmt.Sprintf("/artists/%d", id))
	}
}

func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(r, "Artist not found")
		redirect(w, r, "/")
		return
	}

	_, err := h.Service.DeleteArtist(r.Context(), id)
	switch {
	case err == nil:
		h.flash(r, "Artist is successfully deleted with all of its shows.")
		redirect(w, r, "/")
	case errors.Is(err, service.ErrNotFound):
		h.flash(r, "Artist not found")
		redirect(w, r, "/")
	default:
		h.flash(r, "Artist is not deleted, exception occurred!")
		redirect(w, r, fmt.Sprintf("/artists/%d", id))
	}
}
