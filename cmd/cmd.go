// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// initdbCommand creates the schema, optionally wiping existing data first.
func initdbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "initdb",
		Usage: "Initialize the database",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "drop",
				Usage: "Drop all tables before creating them",
			},
			&cli.BoolFlag{
				Name:  "write-config",
				Usage: "Write the --config file from the built-in template when it is missing",
			},
		},
		Action: r.InitDB,
	}
}

// forgeCommand seeds the sample owner and movies.
func forgeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "forge",
		Usage:  "Generate sample data",
		Action: r.Forge,
	}
}

// adminCommand creates or updates the login of the watchlist owner.
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Create or update the user's login; prompts for missing values",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "The username used to login",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "The password used to login",
			},
		},
		Action: r.Admin,
	}
}

// serveCommand runs the web application.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web application until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (overrides server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides server.port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the watchlist in a browser once listening",
			},
		},
		Action: r.Serve,
	}
}

// moviesCommand prints the watchlist.
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"ls"},
		Usage:   "List the movies on the watchlist",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Movies,
	}
}

// exportCommand writes the watchlist to a file or stdout.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the watchlist as csv, markdown, json or text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown, json, text",
				Value:   "markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (\"-\" for stdout)",
			},
		},
		Action: r.Export,
	}
}

// tuiCommand returns the top-level TUI command for browsing the watchlist.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse the watchlist in an interactive terminal UI",
		Action:  r.TUI,
	}
}
