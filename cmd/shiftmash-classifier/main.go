// Package main provides the coverage classifier daemon. On a cron schedule
// it recomputes shortage/surplus/normal for the current day's shifts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shiftmash/shiftmash/pkg/cmd"
	"github.com/shiftmash/shiftmash/pkg/config"
	"github.com/shiftmash/shiftmash/pkg/log"
	"github.com/shiftmash/shiftmash/pkg/services"
	cli "github.com/urfave/cli/v3"
)

func main() {
	logger := log.WithModule("classifier")

	command := &cli.Command{
		Name:                  "shiftmash-classifier",
		Usage:                 "Periodically reclassify shift coverage",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Storage URL: a directory path, file://, or redis://",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "schedule",
				Usage:   "Cron expression for classification runs",
				Value:   "*/5 * * * *",
				Sources: cli.EnvVars("CLASSIFIER_SCHEDULE"),
			},
			&cli.StringFlag{
				Name:    "coverage-config",
				Usage:   "Path to the coverage.yaml headcount table (empty: one per role)",
				Sources: cli.EnvVars("COVERAGE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (kafka, memory, none)",
				Value:   "none",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
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

			schedule := command.String("schedule")
			if _, err := cron.ParseStandard(schedule); err != nil {
				return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
			}

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			if eventBus != nil {
				defer func() {
					if err := eventBus.Close(); err != nil {
						logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
					}
				}()
			}

			var coverage map[string]services.Coverage

			if path := command.String("coverage-config"); path != "" {
				loaded, err := config.LoadCoverage(path)
				if err != nil {
					return err
				}

				coverage = loaded

				logger.InfoContext(ctx, "Loaded coverage table", "stores", len(coverage))
			}

			shifts := services.NewShifts(persistence, eventBus, coverage, logger)

			runner := cron.New()

			_, err := runner.AddFunc(schedule, func() {
				date := time.Now().Format("2006-01-02")

				updated, err := shifts.Reclassify(ctx, date)
				if err != nil {
					logger.ErrorContext(ctx, "Classification run failed", "date", date, "error", err)

					return
				}

				logger.InfoContext(ctx, "Classification run complete", "date", date, "updated", updated)
			})
			if err != nil {
				return err
			}

			logger.InfoContext(ctx, "Starting classifier", "schedule", schedule)
			runner.Start()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop

			logger.InfoContext(ctx, "Stopping classifier")
			<-runner.Stop().Done()

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
