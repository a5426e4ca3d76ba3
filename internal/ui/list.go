package ui

import (
	"fmt"
	"net/url"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/watchlist/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie *models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title() }
func (i movieItem) Title() string       { return i.movie.Title() }
func (i movieItem) Description() string { return fmt.Sprintf("%s • #%d", i.movie.Year(), i.movie.ID()) }

// imdbSearchURL is the IMDb search page for title.
func imdbSearchURL(title string) string {
	return "https://www.imdb.com/find?q=" + url.QueryEscape(title)
}
