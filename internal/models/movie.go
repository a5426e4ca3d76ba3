package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
)

const (
	MaxTitleLength = 60
	YearLength     = 4
)

// Movie is a watchlist entry.
type Movie struct {
	id        int64
	title     string
	year      string
	createdAt time.Time
	updatedAt time.Time
}

// NewMovie creates an unsaved movie; the repository assigns its id.
func NewMovie(title, year string) *Movie {
	now := time.Now().UTC()
	return &Movie{title: title, year: year, createdAt: now, updatedAt: now}
}

func (m *Movie) ID() int64            { return m.id }
func (m *Movie) Title() string        { return m.title }
func (m *Movie) Year() string         { return m.year }
func (m *Movie) CreatedAt() time.Time { return m.createdAt }
func (m *Movie) UpdatedAt() time.Time { return m.updatedAt }

func (m *Movie) SetID(id int64)           { m.id = id }
func (m *Movie) SetTitle(title string)    { m.title = title }
func (m *Movie) SetYear(year string)      { m.year = year }
func (m *Movie) SetCreatedAt(t time.Time) { m.createdAt = t }
func (m *Movie) SetUpdatedAt(t time.Time) { m.updatedAt = t }

// Clone returns a copy so callers can stage edits without touching the original.
func (m *Movie) Clone() *Movie {
	c := *m
	return &c
}

// Validate requires a title of 1 to 60 characters and a year of exactly 4 characters.
func (m *Movie) Validate() error {
	return ValidateMovieFields(m.title, m.year)
}

// ValidateMovieFields applies the [Movie] field constraints to raw values.
func ValidateMovieFields(title, year string) error {
	if title == "" || shared.CharCount(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be 1-%d characters", shared.ErrInvalidInput, MaxTitleLength)
	}
	if shared.CharCount(year) != YearLength {
		return fmt.Errorf("%w: year must be %d characters", shared.ErrInvalidInput, YearLength)
	}
	return nil
}
