package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/watchlist"
)

// movieID parses the {id} wildcard. Anything that is not a positive integer is reported as missing.
func movieID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func movieForm(r *http.Request) watchlist.MovieForm {
	return watchlist.MovieForm{Title: r.PostFormValue("title"), Year: r.PostFormValue("year")}
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	movies, err := a.svc.ListMovies(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	a.render(w, r, http.StatusOK, "index.html", pageData{Movies: movies})
}

func (a *App) createMovie(w http.ResponseWriter, r *http.Request) {
	_, err := a.svc.CreateMovie(r.Context(), movieForm(r), identityFrom(r.Context()))
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		a.redirect(w, r, "/", msgInvalidInput)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", msgCreated)
	}
}

func (a *App) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		a.notFound(w, r)
		return
	}

	movie, err := a.svc.GetMovie(r.Context(), id)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		a.notFound(w, r)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.render(w, r, http.StatusOK, "edit.html", pageData{Movie: movie})
	}
}

func (a *App) editMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		a.notFound(w, r)
		return
	}

	_, err := a.svc.EditMovie(r.Context(), id, movieForm(r), identityFrom(r.Context()))
	switch {
	case errors.Is(err, shared.ErrNotFound):
		a.notFound(w, r)
	case errors.Is(err, shared.ErrInvalidInput):
		a.redirect(w, r, fmt.Sprintf("/movie/edit/%d", id), msgInvalidInput)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", msgUpdated)
	}
}

func (a *App) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		a.notFound(w, r)
		return
	}

	err := a.svc.DeleteMovie(r.Context(), id, identityFrom(r.Context()))
	switch {
	case errors.Is(err, shared.ErrNotFound):
		a.notFound(w, r)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", msgDeleted)
	}
}

func (a *App) loginForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "login.html", pageData{})
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	creds := watchlist.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}.Normalize()

	if err := creds.Validate(); err != nil {
		a.redirect(w, r, "/login", msgInvalidInput)
		return
	}

	session, user, err := a.tracker.Login(r.Context(), sessionFrom(r.Context()), creds.Username, creds.Password)
	switch {
	case errors.Is(err, shared.ErrInvalidCredentials):
		a.logger.Warn("failed login", "username", creds.Username, "remote", r.RemoteAddr)
		a.redirect(w, r, "/login", msgBadCredentials)
	case err != nil:
		a.serverError(w, r, err)
	default:
		if err := a.bindSession(w, r, session, user); err != nil {
			a.serverError(w, r, err)
			return
		}
		a.logger.Info("login", "user", user.String())
		a.redirect(w, r, "/", msgLoginSuccess)
	}
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.tracker.Logout(r.Context(), sessionFrom(r.Context())); err != nil {
		a.serverError(w, r, err)
		return
	}
	// The farewell flash lands in a fresh anonymous session.
	a.bindSession(w, r, nil, nil)
	a.redirect(w, r, "/", msgLoggedOut)
}

func (a *App) settingsForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "settings.html", pageData{})
}

func (a *App) updateSettings(w http.ResponseWriter, r *http.Request) {
	form := watchlist.SettingsForm{Name: r.PostFormValue("name")}

	err := a.svc.UpdateDisplayName(r.Context(), form, identityFrom(r.Context()))
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		a.redirect(w, r, "/settings", msgInvalidInput)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", msgSettingsUpdated)
	}
}

func (a *App) userPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "User: %s", template.HTMLEscapeString(r.PathValue("name")))
}
