package web

import (
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/server"
	"github.com/desertthunder/watchlist/internal/watchlist"
)

// Flash messages shown to the user.
const (
	msgCreated         = "Item created."
	msgUpdated         = "Item updated."
	msgDeleted         = "Item deleted."
	msgInvalidInput    = "Invalid input."
	msgLoginSuccess    = "Login success."
	msgBadCredentials  = "Invalid username or password."
	msgLoggedOut       = "Bye."
	msgSettingsUpdated = "Settings updated."
	msgLoginRequired   = "Please log in to access this page."
)

// App is the watchlist web application. It implements [http.Handler].
type App struct {
	svc           *watchlist.Service
	tracker       *auth.Tracker
	logger        *log.Logger
	templates     map[string]*template.Template
	limiter       *server.ClientLimiter
	secureCookies bool
	router        *server.BasicRouter
}

type AppOpts struct {
	Service *watchlist.Service
	Tracker *auth.Tracker
	Logger  *log.Logger

	// LoginRate is the sustained number of login attempts each client address may make per second; zero disables the limit.
	LoginRate  float64
	LoginBurst int

	SecureCookies bool
}

// NewApp parses the embedded templates and registers every route.
func NewApp(opts AppOpts) (*App, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	limit := rate.Inf
	if opts.LoginRate > 0 {
		limit = rate.Limit(opts.LoginRate)
	}

	a := &App{
		svc:           opts.Service,
		tracker:       opts.Tracker,
		logger:        opts.Logger,
		templates:     templates,
		limiter:       server.NewClientLimiter(limit, opts.LoginBurst),
		secureCookies: opts.SecureCookies,
		router:        server.NewBasicRouter(),
	}
	a.routes()
	return a, nil
}

func (a *App) routes() {
	r := a.router

	r.Use(server.Recover(a.logger), server.RequestLogger(a.logger))
	r.HandleFunc(http.MethodGet, "/healthz", a.healthz)

	r.Use(a.sessions)

	r.HandleFunc(http.MethodGet, "/{$}", a.index)
	r.Handle(http.MethodPost, "/{$}", a.requireLogin(http.HandlerFunc(a.createMovie)))
	r.Handle(http.MethodGet, "/movie/edit/{id}", a.requireLogin(http.HandlerFunc(a.editForm)))
	r.Handle(http.MethodPost, "/movie/edit/{id}", a.requireLogin(http.HandlerFunc(a.editMovie)))
	r.Handle(http.MethodPost, "/movie/delete/{id}", a.requireLogin(http.HandlerFunc(a.deleteMovie)))

	r.HandleFunc(http.MethodGet, "/login", a.loginForm)
	r.Handle(http.MethodPost, "/login", server.Chain(http.HandlerFunc(a.login), server.RateLimit(a.limiter)))
	r.Handle(http.MethodGet, "/logout", a.requireLogin(http.HandlerFunc(a.logout)))

	r.Handle(http.MethodGet, "/settings", a.requireLogin(http.HandlerFunc(a.settingsForm)))
	r.Handle(http.MethodPost, "/settings", a.requireLogin(http.HandlerFunc(a.updateSettings)))

	r.HandleFunc(http.MethodGet, "/user/{name}", a.userPage)

	r.HandleFunc("", "/", a.notFound)
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
