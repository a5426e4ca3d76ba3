package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/watchlist/internal/shared"
)

// InitDB creates the schema, dropping existing tables first when --drop is set.
func (r *Runner) InitDB(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("write-config") {
		if err := r.writeConfig(cmd.String("config")); err != nil {
			return err
		}
	}

	path := r.config.Database.Path
	r.logger.Info("initializing database", "path", path)

	db, err := shared.NewDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if path != shared.MemoryPath {
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	}

	if cmd.Bool("drop") {
		r.logger.Warn("dropping all tables", "path", path)
		if err := shared.ResetDatabase(ctx, db); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	r.logger.Debug("running database migrations")
	if err := shared.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if version, err := shared.SchemaVersion(ctx, db); err == nil {
		r.logger.Debug("schema up to date", "version", version)
	}

	return r.writePlain("Initialized database.\n")
}

func (r *Runner) writeConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		r.logger.Debug("config file already exists", "path", path)
		return nil
	}

	r.logger.Info("config file not found, creating from template", "path", path)
	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	return nil
}
