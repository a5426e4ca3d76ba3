package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/server"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/web"
)

// sessionSweepInterval is how often serve drops expired sessions while running.
const sessionSweepInterval = time.Hour

// Serve runs the web application until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("host") {
		r.config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		r.config.Server.Port = int(cmd.Int("port"))
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	ttl, err := r.config.Server.TTL()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, store, closeDB, err := r.openService(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	tracker := auth.NewTracker(auth.TrackerOpts{
		Store:  store,
		Secret: r.config.Server.SecretKey,
		TTL:    ttl,
	})
	if n, err := tracker.Sweep(ctx); err != nil {
		r.logger.Warn("failed to remove expired sessions", "error", err)
	} else if n > 0 {
		r.logger.Debug("removed expired sessions", "count", n)
	}
	go tracker.SweepEvery(ctx, sessionSweepInterval, r.logger)

	app, err := web.NewApp(web.AppOpts{
		Service:    svc,
		Tracker:    tracker,
		Logger:     shared.WithLogger(r.logger, "component", "web"),
		LoginRate:  r.config.Server.LoginRate,
		LoginBurst: r.config.Server.LoginBurst,
	})
	if err != nil {
		return fmt.Errorf("failed to build web app: %w", err)
	}

	addr := r.config.Server.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	url := "http://" + ln.Addr().String() + "/"
	r.writePlain("Serving watchlist at %s\n", url)
	if cmd.Bool("open") {
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	return server.Run(ctx, server.New(addr, app), ln, r.logger)
}
