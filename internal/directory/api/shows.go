package api

import (
	"net/http"

	"fyyur/internal/forms"
	"fyyur/internal/render"
)

type showFormPage struct {
	Form forms.ShowForm `json:"form"`
}

func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.Service.ListShows(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, render.Page{Template: "pages/shows", Data: shows})
}

func (h *Handler) NewShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.Page{
		Template: "forms/new_show",
		Data:     showFormPage{Form: h.Service.NewShowForm()},
	})
}

func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	values, err := postValues(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest)
		return
	}
	form := forms.ShowFormFromValues(values)

	if _, err := h.Service.CreateShow(r.Context(), form); err != nil {
		page := render.Page{Template: "forms/new_show", Data: showFormPage{Form: form}}
		if fields, ok := formErrors(err); ok {
			page.FormErrors = fields
			h.render(w, r, http.StatusBadRequest, page)
			return
		}
		page.Messages = []string{"An error occurred. Show could not be listed."}
		h.render(w, r, http.StatusInternalServerError, page)
		return
	}

	h.flash(r, "Show was successfully listed!")
	redirect(w, r, "/shows")
}
