// Package server provides HTTP routing, middleware, and the serve loop for the watchlist web app.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Routes are registered as method-qualified
// patterns ("POST /movie/delete/{id}"), so the mux answers 405 for a known path with the wrong method and
// handlers read path wildcards with [http.Request.PathValue].
//
// # Middleware
//
// [Recover] turns a panicking handler into a 500, [RequestLogger] logs each request with its status and duration,
// and [RateLimit] answers 429 once a token bucket is empty. Session handling lives in the web package, which
// builds on these types.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Serving
//
// [Run] serves until its context is cancelled and then shuts the server down gracefully.
package server
