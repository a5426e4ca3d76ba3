package formatter

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
	th "github.com/desertthunder/watchlist/internal/testing"
)

func sampleExport() *WatchlistExport {
	totoro := models.NewMovie("My Neighbor Totoro", "1988")
	totoro.SetID(1)
	comma := models.NewMovie("Crouching Tiger, Hidden Dragon", "2000")
	comma.SetID(2)

	return NewWatchlistExport(models.NewUser("Wu Han", ""), []*models.Movie{totoro, comma})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{in: "csv", want: FormatCSV},
		{in: "CSV", want: FormatCSV},
		{in: "md", want: FormatMarkdown},
		{in: "markdown", want: FormatMarkdown},
		{in: "json", want: FormatJSON},
		{in: " txt ", want: FormatText},
		{in: "text", want: FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "ID,Title,Year", lines[0])
		assert.Equal(t, "1,My Neighbor Totoro,1988", lines[1])
		assert.Equal(t, `2,"Crouching Tiger, Hidden Dragon",2000`, lines[2])
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport())
		require.NoError(t, err)

		output := string(data)
		assert.True(t, strings.HasPrefix(output, "# Wu Han's Watchlist\n"))
		assert.Contains(t, output, "**Titles**: 2")
		assert.Contains(t, output, "| # | Title | Year |")
		assert.Contains(t, output, "My Neighbor Totoro")
	})

	t.Run("ExportToMarkdown Empty", func(t *testing.T) {
		data, err := ExportToMarkdown(NewWatchlistExport(nil, nil))
		require.NoError(t, err)
		assert.Equal(t, "# Watchlist\n\n**Titles**: 0\n\n", string(data))
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		require.NoError(t, err)

		output := string(data)
		assert.Contains(t, output, "Wu Han's Watchlist\n")
		assert.Contains(t, output, "Titles: 2")
		assert.Contains(t, output, "1. My Neighbor Totoro (1988)")
		assert.Contains(t, output, "2. Crouching Tiger, Hidden Dragon (2000)")
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleExport())
		require.NoError(t, err)

		var decoded struct {
			Owner  string `json:"owner"`
			Movies []struct {
				ID    int64  `json:"id"`
				Title string `json:"title"`
				Year  string `json:"year"`
			} `json:"movies"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "Wu Han", decoded.Owner)
		require.Len(t, decoded.Movies, 2)
		assert.Equal(t, int64(2), decoded.Movies[1].ID)
		assert.Equal(t, "2000", decoded.Movies[1].Year)
	})

	t.Run("ExportToJSON Empty List", func(t *testing.T) {
		data, err := ExportToJSON(NewWatchlistExport(nil, nil))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"movies": []`)
		assert.NotContains(t, string(data), `"owner"`)
	})
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(dir, "out."+format.Extension())

			written, err := WriteExport(sampleExport(), format, path)
			require.NoError(t, err)
			assert.Equal(t, path, written)

			th.AssertFileExists(t, path)
			assert.Contains(t, th.MustReadFile(t, path), "My Neighbor Totoro")
		})
	}

	t.Run("Unwritable Path", func(t *testing.T) {
		_, err := WriteExport(sampleExport(), FormatCSV, filepath.Join(dir, "missing", "out.csv"))
		assert.Error(t, err)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := Export(sampleExport(), Format("xml"))
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})
}
