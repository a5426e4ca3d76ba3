package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/desertthunder/watchlist/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index.html", "edit.html", "login.html", "settings.html", "404.html"}

// pageData is the context every template renders with.
type pageData struct {
	Owner    *models.User
	Identity *models.User
	Flashes  []string
	Movies   []*models.Movie
	Movie    *models.Movie
}

func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return templates, nil
}

// render writes page with the owner, identity and pending flashes filled in.
func (a *App) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	tmpl, ok := a.templates[page]
	if !ok {
		a.serverError(w, r, fmt.Errorf("unknown template %s", page))
		return
	}

	ctx := r.Context()

	owner, err := a.svc.Owner(ctx)
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	data.Owner = owner
	data.Identity = identityFrom(ctx)

	session := sessionFrom(ctx)
	flashes, err := a.tracker.Flashes(ctx, session)
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	data.Flashes = flashes

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		a.requeueFlashes(r, session, flashes)
		a.serverError(w, r, fmt.Errorf("failed to render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// requeueFlashes puts back messages drained for a page that failed to render.
func (a *App) requeueFlashes(r *http.Request, session *models.Session, flashes []string) {
	for _, message := range flashes {
		if err := a.tracker.Flash(r.Context(), session, message); err != nil {
			a.logger.Warn("failed to requeue flash", "message", message, "error", err)
			return
		}
	}
}

// redirect queues message, when set, and answers 303 to location.
func (a *App) redirect(w http.ResponseWriter, r *http.Request, location, message string) {
	if message != "" {
		session, err := a.ensureSession(w, r)
		if err != nil {
			a.serverError(w, r, err)
			return
		}
		if err := a.tracker.Flash(r.Context(), session, message); err != nil {
			a.serverError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusNotFound, "404.html", pageData{})
}

func (a *App) serverError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
