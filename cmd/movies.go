package main

import (
	"context"
	"strconv"

	"github.com/urfave/cli/v3"
)

type movieRow struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  string `json:"year"`
}

// Movies prints the watchlist as a table or JSON.
func (r *Runner) Movies(ctx context.Context, cmd *cli.Command) error {
	svc, _, closeDB, err := r.openService(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	movies, err := svc.ListMovies(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		rows := make([]movieRow, 0, len(movies))
		for _, m := range movies {
			rows = append(rows, movieRow{ID: m.ID(), Title: m.Title(), Year: m.Year()})
		}
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	owner, err := svc.Owner(ctx)
	if err != nil {
		return err
	}
	if owner != nil {
		r.writePlain("%s's Watchlist\n", owner.Name())
	}

	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{strconv.FormatInt(m.ID(), 10), m.Title(), m.Year()})
	}
	if err := r.writePlain("%s\n", renderTable([]string{"ID", "Title", "Year"}, rows, []columnAlignment{alignRight, alignLeft, alignRight})); err != nil {
		return err
	}
	return r.writePlain("%d Titles\n", len(movies))
}
