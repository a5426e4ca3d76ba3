// package formatter exports the watchlist to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// Formats lists the supported formats in the order they are offered to users.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatJSON, FormatText}

// ParseFormat accepts a format name or its common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	}
	return string(f)
}

// WatchlistExport is a snapshot of the watchlist.
type WatchlistExport struct {
	Owner      string
	Movies     []*models.Movie
	ExportedAt time.Time
}

// NewWatchlistExport snapshots movies for owner, which may be nil.
func NewWatchlistExport(owner *models.User, movies []*models.Movie) *WatchlistExport {
	export := &WatchlistExport{Movies: movies, ExportedAt: time.Now().UTC()}
	if owner != nil {
		export.Owner = owner.Name()
	}
	return export
}

func (e *WatchlistExport) title() string {
	if e.Owner == "" {
		return "Watchlist"
	}
	return e.Owner + "'s Watchlist"
}

// ExportToCSV converts a WatchlistExport to CSV format with columns: ID, Title, Year
func ExportToCSV(export *WatchlistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "Year"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range export.Movies {
		record := []string{strconv.FormatInt(movie.ID(), 10), movie.Title(), movie.Year()}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a heading, a title count and a Markdown table of the movies.
func ExportToMarkdown(export *WatchlistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.title()))
	buf.WriteString(fmt.Sprintf("**Titles**: %d\n\n", len(export.Movies)))

	if len(export.Movies) > 0 {
		tw := table.NewWriter()
		tw.AppendHeader(table.Row{"#", "Title", "Year"})
		for i, movie := range export.Movies {
			tw.AppendRow(table.Row{i + 1, movie.Title(), movie.Year()})
		}
		buf.WriteString(tw.RenderMarkdown())
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a WatchlistExport to plain text format
func ExportToText(export *WatchlistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(export.title() + "\n")
	buf.WriteString(fmt.Sprintf("Titles: %d\n\n", len(export.Movies)))

	for i, movie := range export.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, movie.Title(), movie.Year()))
	}

	return buf.Bytes(), nil
}

type movieJSON struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Year      string    `json:"year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type watchlistJSON struct {
	Owner      string      `json:"owner,omitempty"`
	ExportedAt time.Time   `json:"exported_at"`
	Movies     []movieJSON `json:"movies"`
}

// ExportToJSON converts a WatchlistExport to indented JSON
func ExportToJSON(export *WatchlistExport) ([]byte, error) {
	out := watchlistJSON{
		Owner:      export.Owner,
		ExportedAt: export.ExportedAt,
		Movies:     make([]movieJSON, 0, len(export.Movies)),
	}
	for _, movie := range export.Movies {
		out.Movies = append(out.Movies, movieJSON{
			ID:        movie.ID(),
			Title:     movie.Title(),
			Year:      movie.Year(),
			CreatedAt: movie.CreatedAt(),
			UpdatedAt: movie.UpdatedAt(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders export in format.
func Export(export *WatchlistExport, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatJSON:
		return ExportToJSON(export)
	case FormatText:
		return ExportToText(export)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

// WriteExport renders export and writes it to path.
//
// Defaults to watchlist.{ext} as the filename.
func WriteExport(export *WatchlistExport, format Format, path string) (string, error) {
	if path == "" {
		path = "watchlist." + format.Extension()
	}

	data, err := Export(export, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
