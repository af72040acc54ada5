package web

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// Pages serves the landing page and the static asset mount. It is
// independent of the API layer.
type Pages struct {
	tmpl      *template.Template
	staticDir string
}

func New(templatesDir, staticDir string) (*Pages, error) {
	tmpl, err := template.ParseFiles(filepath.Join(templatesDir, "index.html"))
	if err != nil {
		return nil, err
	}
	return &Pages{tmpl: tmpl, staticDir: staticDir}, nil
}

func (p *Pages) Register(r *chi.Mux) {
	r.Get("/", p.landing)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(p.staticDir))))
}

func (p *Pages) landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.Execute(w, map[string]string{"Title": "Mini Shop"}); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
