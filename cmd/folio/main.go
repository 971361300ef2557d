package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/avasquez/folio/internal/config"
	"github.com/avasquez/folio/internal/github"
	"github.com/avasquez/folio/internal/logger"
	"github.com/avasquez/folio/internal/mail"
	"github.com/avasquez/folio/internal/metrics"
	"github.com/avasquez/folio/internal/project"
	"github.com/avasquez/folio/internal/server"
)

func main() {
	app := &cli.App{
		Name:  "folio",
		Usage: "Personal portfolio site and its catalog tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server",
				Action: runServe,
			},
			{
				Name:      "update-stats",
				Usage:     "Refresh GitHub star and fork counts in a catalog file",
				ArgsUsage: "<projects.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the updated catalog here instead of overwriting the input",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "GitHub personal access token",
						EnvVars: []string{"GITHUB_TOKEN"},
					},
				},
				Action: runUpdateStats,
			},
			{
				Name:      "merge",
				Usage:     "Merge catalog files, keeping the highest-starred entry per project",
				ArgsUsage: "<file.json> [file.json...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "projects.json",
						Usage:   "Output file path",
					},
				},
				Action: runMerge,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	projects, err := project.Load(cfg.ProjectsPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	store, err := metrics.Open(cfg.MetricsDB)
	if err != nil {
		return err
	}
	defer store.Close()

	// Expire old visit rows off the startup path.
	go func() {
		if _, err := store.Cleanup(); err != nil {
			slog.Error("visit cleanup failed", "error", err)
		}
	}()

	sender := mail.NewSender(cfg.SMTP, cfg.ContactAddress)

	srv, err := server.New(cfg, projects, store, sender)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", "http://localhost:"+cfg.Port,
			"projects", len(projects))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case sig := <-done:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

func runUpdateStats(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one catalog file, got %d", c.NArg())
	}
	path := c.Args().First()

	projects, err := project.Load(path)
	if err != nil {
		return err
	}
	slog.Info("loaded catalog", "path", path, "projects", len(projects))

	client := github.NewClient(c.String("token"))
	if client.Token == "" {
		slog.Warn("no GitHub token configured, unauthenticated rate limits apply")
	}

	updated, err := client.UpdateAll(c.Context, projects)
	if err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		out = path
	}
	if err := project.Save(out, projects); err != nil {
		return err
	}

	slog.Info("catalog updated", "output", out,
		"updated", updated, "total", len(projects))
	return nil
}

func runMerge(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("expected at least one catalog file")
	}

	lists := make([][]project.Project, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		projects, err := project.Load(path)
		if err != nil {
			return err
		}
		lists = append(lists, projects)
	}

	merged := project.Merge(lists...)

	out := c.String("output")
	if err := project.Save(out, merged); err != nil {
		return err
	}

	slog.Info("catalogs merged", "inputs", c.NArg(),
		"projects", len(merged), "output", out)
	return nil
}
