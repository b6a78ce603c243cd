// Package render turns handler results into responses. HTML templating is
// left to whoever implements Renderer; the default writes the page as JSON.
package render

import (
	"encoding/json"
	"net/http"
)

// Page is what a template receives: its identifier, any flashed messages,
// per-field form errors and the page data itself.
type Page struct {
	Template   string              `json:"template"`
	Messages   []string            `json:"messages,omitempty"`
	FormErrors map[string][]string `json:"form_errors,omitempty"`
	Data       any                 `json:"data,omitempty"`
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page Page) error
}

type JSONRenderer struct{}

func (JSONRenderer) Render(w http.ResponseWriter, status int, page Page) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(page)
}
