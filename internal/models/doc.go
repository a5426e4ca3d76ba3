// Package models defines domain entities and persistence interfaces for the watchlist.
//
// Persistent entities:
//   - [User] : the single account that owns the watchlist
//   - [Movie] : a watchlist entry with a title and a release year
//   - [Session] : a browser session, anonymous or bound to the [User]
//
// Entities validate their own field constraints via Validate, so invalid values never reach a repository.
// The repository interfaces ([UserRepository], [MovieRepository], [SessionRepository]) describe the
// persistence primitives the services depend on; internal/repositories implements them on SQLite and
// internal/testing provides in-memory doubles.
package models
