// Package ui implements a read-only terminal browser for the watchlist using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [MovieListView] : Browse and filter the watchlist
//  2. [DetailView] : Show one movie with its timestamps and an IMDb search link
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Data comes from a [Source], which the watchlist service satisfies; the TUI never writes.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
