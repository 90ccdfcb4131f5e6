package main

import (
	"fmt"
	"os"

	"socialfeed/internal/config"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cliApp := &cli.App{
		Name:  "socialfeed",
		Usage: "social feed backend: users, posts, tags and followers",
		Commands: []*cli.Command{
			{
				Name:        "serve",
				Usage:       "Start the HTTP API",
				Category:    "Api",
				Description: `Waits for the database, runs migrations, connects to Redis and serves the API.`,
				Action:      serve,
			},
			{
				Name:     "migrate",
				Usage:    "Apply schema migrations and exit",
				Category: "Database",
				Action:   migrate,
			},
			{
				Name:     "wait-for-db",
				Usage:    "Block until the database accepts connections",
				Category: "Database",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "timeout", Usage: "give up after this long (defaults to DB_WAIT_TIMEOUT)"},
				},
				Action: waitForDB,
			},
			{
				Name:     "create-superuser",
				Usage:    "Create a staff superuser account",
				Category: "Users",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"SUPERUSER_PASSWORD"}},
				},
				Action: createSuperuser,
			},
		},
		Action: serve,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap بارگذاری تنظیمات از .env و ساخت لاگر
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.InitLogger(cfg.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}
