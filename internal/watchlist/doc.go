// package watchlist applies the watchlist's business rules: movie CRUD gated on a
// logged-in identity, the owner's display name, sample data and admin provisioning.
package watchlist
