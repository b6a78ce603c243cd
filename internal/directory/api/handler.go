package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fyyur/internal/directory/db"
	"fyyur/internal/directory/service"
	"fyyur/internal/flash"
	"fyyur/internal/forms"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	"fyyur/internal/render"
)

const maxFormMemory = 10 << 20

// DirectoryService is what the handlers need from service.Service.
type DirectoryService interface {
	Home(ctx context.Context) (db.Counts, error)
	Ping(ctx context.Context) error

	ListVenueAreas(ctx context.Context) ([]service.Area, error)
	GetVenue(ctx context.Context, id int64) (*service.VenueDetail, error)
	FindVenue(ctx context.Context, id int64) (*models.Venue, error)
	CreateVenue(ctx context.Context, form forms.VenueForm) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, form forms.VenueForm) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) (*models.Venue, error)

	ListArtists(ctx context.Context) ([]service.ArtistSummary, error)
	GetArtist(ctx context.Context, id int64) (*service.ArtistDetail, error)
	FindArtist(ctx context.Context, id int64) (*models.Artist, error)
	CreateArtist(ctx context.Context, form forms.ArtistForm) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, form forms.ArtistForm) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id int64) (*models.Artist, error)

	Search(ctx context.Context, kind service.Kind, term string) (*service.SearchResult, error)

	ListShows(ctx context.Context) ([]service.ShowEntry, error)
	NewShowForm() forms.ShowForm
	CreateShow(ctx context.Context, form forms.ShowForm) (*models.Show, error)
}

type Handler struct {
	Service  DirectoryService
	Renderer render.Renderer
	Flash    flash.Store
	Logger   *logger.Logger
}

func NewHandler(svc DirectoryService, flashes flash.Store, log *logger.Logger) *Handler {
	return &Handler{
		Service:  svc,
		Renderer: render.JSONRenderer{},
		Flash:    flashes,
		Logger:   log,
	}
}

// NewRouter wires the middleware stack and every directory route.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(h.recoverer)
	r.Use(flash.Session)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, r, http.StatusMethodNotAllowed)
	})

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the directory routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/healthz", h.Health)

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", h.ListVenues)
		r.Post("/search", h.SearchVenues)
		r.Get("/create", h.NewVenueForm)
		r.Post("/create", h.CreateVenue)
		r.Get("/{id}", h.ShowVenue)
		r.Delete("/{id}", h.DeleteVenue)
		r.Post("/{id}/delete", h.DeleteVenue)
		r.Get("/{id}/edit", h.EditVenueForm)
		r.Post("/{id}/edit", h.UpdateVenue)
	})

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", h.ListArtists)
		r.Post("/search", h.SearchArtists)
		r.Get("/create", h.NewArtistForm)
		r.Post("/create", h.CreateArtist)
		r.Get("/{id}", h.ShowArtist)
		r.Delete("/{id}", h.DeleteArtist)
		r.Post("/{id}/delete", h.DeleteArtist)
		r.Get("/{id}/edit", h.EditArtistForm)
		r.Post("/{id}/edit", h.UpdateArtist)
	})

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", h.ListShows)
		r.Get("/create", h.NewShowForm)
		r.Post("/create", h.CreateShow)
	})
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.Home(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, render.Page{Template: "pages/home", Data: counts})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Ping(r.Context()); err != nil {
		h.sendJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.sendJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logRequests writes one API log line per request.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.Logger.LogAPI(r.Method, r.URL.Path, strconv.Itoa(status), time.Since(start).String())
	})
}

// recoverer turns a panic into the 500 page.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.Logger.Error("HTTP", fmt.Sprintf("panic serving %s %s: %v", r.Method, r.URL.Path, rec))
			h.renderError(w, r, http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

// render adds any pending flash messages to page before rendering it.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page render.Page) {
	if h.Flash != nil {
		if sid := flash.SessionID(r.Context()); sid != "" {
			pending, err := h.Flash.Pop(r.Context(), sid)
			if err != nil {
				h.Logger.Warn("FLASH", fmt.Sprintf("Failed to read flash messages: %v", err))
			}
			page.Messages = append(pending, page.Messages...)
		}
	}
	if err := h.Renderer.Render(w, status, page); err != nil {
		h.Logger.Error("HTTP", fmt.Sprintf("Failed to render %s: %v", page.Template, err))
	}
}

func (h *Handler) flash(r *http.Request, message string) {
	if h.Flash == nil {
		return
	}
	sid := flash.SessionID(r.Context())
	if sid == "" {
		return
	}
	if err := h.Flash.Add(r.Context(), sid, message); err != nil {
		h.Logger.Warn("FLASH", fmt.Sprintf("Failed to store flash message: %v", err))
	}
}

// redirect sends the browser to url with a GET.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int) {
	h.render(w, r, status, render.Page{
		Template: fmt.Sprintf("errors/%d", status),
		Messages: []string{http.StatusText(status)},
	})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound)
}

// serverError renders the 500 page. Storage failures were already logged by
// the service.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var serr *service.StorageError
	if !errors.As(err, &serr) {
		h.Logger.Error("HTTP", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
	}
	h.renderError(w, r, http.StatusInternalServerError)
}

// readError renders the page for an error from a read-only service call.
func (h *Handler) readError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	h.serverError(w, r, err)
}

// pathID reads the {id} route parameter. ok is false for anything that is
// not a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// postValues parses a url-encoded or multipart form body.
func postValues(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// sendJSONResponse is a helper function to send JSON responses
func (h *Handler) sendJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already written
		h.Logger.Error("HTTP", fmt.Sprintf("Failed to encode JSON response: %v", err))
	}
}

// formErrors extracts per-field messages from a validation failure.
func formErrors(err error) (map[string][]string, bool) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
