// Package web implements the watchlist web application on top of the server package.
//
// # Routes
//
//	GET  /                  → watchlist, with the add form when logged in
//	POST /                  → add a movie (login required)
//	GET  /movie/edit/{id}   → edit form (login required)
//	POST /movie/edit/{id}   → save an edit (login required)
//	POST /movie/delete/{id} → delete a movie (login required)
//	GET  /login, POST /login
//	GET  /logout            → login required
//	GET  /settings, POST /settings → change the display name (login required)
//	GET  /user/{name}       → escaped echo of name
//	GET  /healthz           → liveness probe, no session
//
// Anything else renders the 404 page.
//
// # Sessions
//
// Every request except /healthz passes through the session middleware, which loads
// the session named by the "session" cookie or starts an anonymous one, and stores
// the session and the resolved identity in the request context. Gated routes
// redirect anonymous callers to /login with a flash and do nothing else.
//
// Mutating routes answer with 303 redirects and report their outcome through
// flash messages that are shown, once, on the next rendered page.
package web
