package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Forge seeds the sample owner and movie list.
func (r *Runner) Forge(ctx context.Context, cmd *cli.Command) error {
	svc, _, closeDB, err := r.openService(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := svc.SeedSampleData(ctx); err != nil {
		return err
	}
	return r.writePlain("Done!\n")
}
