package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/watchlist/internal/formatter"
)

// Export writes the watchlist in the requested format.
//
// An output of "-" writes to stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	svc, _, closeDB, err := r.openService(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	movies, err := svc.ListMovies(ctx)
	if err != nil {
		return err
	}
	owner, err := svc.Owner(ctx)
	if err != nil {
		return err
	}
	export := formatter.NewWatchlistExport(owner, movies)

	if cmd.String("output") == "-" {
		data, err := formatter.Export(export, format)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	path, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}
	r.logger.Info("exported watchlist", "path", path, "movies", len(movies))
	return r.writePlain("Exported %d movies to %s\n", len(movies), path)
}
