package web

import (
	"context"
	"net/http"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "session"

type ctxKey int

const sessionKey ctxKey = iota

// sessionState is the caller's session for one request. Both fields stay nil
// until the caller presents a valid cookie or a handler needs a session.
type sessionState struct {
	session  *models.Session
	identity *models.User
}

func stateFrom(ctx context.Context) *sessionState {
	if state, ok := ctx.Value(sessionKey).(*sessionState); ok {
		return state
	}
	return &sessionState{}
}

func sessionFrom(ctx context.Context) *models.Session {
	return stateFrom(ctx).session
}

func identityFrom(ctx context.Context) *models.User {
	return stateFrom(ctx).identity
}

// sessions loads the caller's session, if any, and resolves its identity.
//
// No row is written here; see [App.ensureSession].
func (a *App) sessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state := &sessionState{}

		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			loaded, err := a.tracker.Load(ctx, cookie.Value)
			if err != nil {
				a.logger.Debug("discarding session cookie", "error", err)
				a.clearSessionCookie(w)
			} else {
				state.session = loaded
			}
		}

		if state.session != nil {
			identity, err := a.tracker.CurrentIdentity(ctx, state.session)
			if err != nil {
				a.serverError(w, r, err)
				return
			}
			state.identity = identity
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey, state)))
	})
}

// ensureSession returns the caller's session, starting one and setting its cookie when there is none.
func (a *App) ensureSession(w http.ResponseWriter, r *http.Request) (*models.Session, error) {
	state := stateFrom(r.Context())
	if state.session != nil {
		return state.session, nil
	}

	session, err := a.tracker.Start(r.Context())
	if err != nil {
		return nil, err
	}
	if err := a.setSessionCookie(w, session); err != nil {
		return nil, err
	}
	state.session = session
	return session, nil
}

// bindSession makes session and identity the caller's for the rest of the request.
// A nil session drops the current one without touching the cookie.
func (a *App) bindSession(w http.ResponseWriter, r *http.Request, session *models.Session, identity *models.User) error {
	state := stateFrom(r.Context())
	if session != nil {
		if err := a.setSessionCookie(w, session); err != nil {
			return err
		}
	}
	state.session = session
	state.identity = identity
	return nil
}

func (a *App) setSessionCookie(w http.ResponseWriter, session *models.Session) error {
	token, err := a.tracker.Token(session)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt(),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (a *App) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireLogin sends anonymous callers to the login page.
func (a *App) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFrom(r.Context()) == nil {
			a.redirect(w, r, "/login", msgLoginRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
