// Package repositories implements SQLite persistence for all domain entities.
//
// Key Implementations:
//   - [UserRepository] : the singleton watchlist owner; a second insert fails with shared.ErrUserExists
//   - [MovieRepository] : watchlist entries in insertion order
//   - [SessionRepository] : browser sessions and their flash message queues
//
// Repositories accept a [DBTX], so the same code runs against a *sql.DB or inside a transaction.
// [Store] bundles the three repositories and implements models.Store, including [Store.Atomic]
// for multi-statement work such as seeding.
//
// Lookups that match no row return errors wrapping shared.ErrNotFound.
package repositories
