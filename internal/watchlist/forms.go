package watchlist

import (
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// MovieForm is the submitted title and year for a create or edit.
type MovieForm struct {
	Title string
	Year  string
}

func (f MovieForm) Normalize() MovieForm {
	return MovieForm{Title: shared.NormalizeField(f.Title), Year: shared.NormalizeField(f.Year)}
}

func (f MovieForm) Validate() error {
	return models.ValidateMovieFields(f.Title, f.Year)
}

// SettingsForm carries a new display name.
type SettingsForm struct {
	Name string
}

func (f SettingsForm) Normalize() SettingsForm {
	return SettingsForm{Name: shared.NormalizeField(f.Name)}
}

func (f SettingsForm) Validate() error {
	if f.Name == "" || shared.CharCount(f.Name) > models.MaxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", shared.ErrInvalidInput, models.MaxNameLength)
	}
	return nil
}

// Credentials is a username and password pair from the login form or the admin command.
//
// Passwords are never trimmed.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) Normalize() Credentials {
	return Credentials{Username: shared.NormalizeField(c.Username), Password: c.Password}
}

func (c Credentials) Validate() error {
	if c.Username == "" || shared.CharCount(c.Username) > models.MaxUsernameLength {
		return fmt.Errorf("%w: username must be 1-%d characters", shared.ErrInvalidInput, models.MaxUsernameLength)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	return nil
}
