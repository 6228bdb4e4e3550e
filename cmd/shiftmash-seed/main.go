// Package main provides the fixture seeding tool for demo environments.
package main

import (
	"context"
	"os"

	"github.com/shiftmash/shiftmash/pkg/cmd"
	"github.com/shiftmash/shiftmash/pkg/fixtures"
	"github.com/shiftmash/shiftmash/pkg/log"
	"github.com/shiftmash/shiftmash/pkg/services"
	cli "github.com/urfave/cli/v3"
)

func main() {
	logger := log.WithModule("seed")

	command := &cli.Command{
		Name:                  "shiftmash-seed",
		Usage:                 "Load the demo dataset into a storage backend",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Storage URL: a directory path, file://, or redis://",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.BoolFlag{
				Name:  "demo-matches",
				Usage: "Also generate reciprocal postings from partner stores",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			if err := fixtures.SeedAll(ctx, persistence); err != nil {
				return err
			}

			logger.InfoContext(ctx, "Seeded demo dataset")

			if !command.Bool("demo-matches") {
				return nil
			}

			demo := services.NewDemo(persistence, logger)

			publishing, err := persistence.LoadPublishing(ctx)
			if err != nil {
				return err
			}

			for _, recruiting := range publishing.Recruitings {
				created, err := demo.GenerateAvailablesForRecruiting(ctx, recruiting.ID)
				if err != nil {
					return err
				}

				logger.InfoContext(ctx, "Generated reciprocal availables",
					"recruiting_id", recruiting.ID, "count", len(created))
			}

			for _, available := range publishing.Availables {
				created, err := demo.GenerateRecruitingsForAvailable(ctx, available.ID)
				if err != nil {
					return err
				}

				logger.InfoContext(ctx, "Generated reciprocal recruitings",
					"available_id", available.ID, "count", len(created))
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
