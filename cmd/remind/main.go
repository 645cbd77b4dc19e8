package main

import (
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/inventopredict/backend-go/internal/config"
	"github.com/inventopredict/backend-go/internal/notify"
	"github.com/inventopredict/backend-go/internal/reminder"
	"github.com/inventopredict/backend-go/internal/repository/postgres"
	"github.com/inventopredict/backend-go/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openStore(c *cli.Context) (*postgres.ReminderRepository, error) {
	db, err := postgres.NewDBFromURL("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := postgres.NewReminderRepository(db)
	if err := repo.EnsureSchema(c.Context); err != nil {
		return nil, err
	}
	return repo, nil
}

func runTick(c *cli.Context) error {
	cfg := config.Load()

	store, err := openStore(c)
	if err != nil {
		return err
	}

	notifier := notify.NewSMTPNotifier(cfg.SMTP)
	dispatcher := notify.NewDispatcher(notifier, time.Duration(cfg.SMTP.TimeoutSeconds)*time.Second)
	scheduler := reminder.NewScheduler(store, dispatcher, nil)

	summary, err := scheduler.RunTick(c.Context)
	if err != nil {
		return fmt.Errorf("reminder tick failed: %w", err)
	}

	logger.Log.Info().
		Int("evaluated", summary.Evaluated).
		Int("buckets_sent", summary.BucketsSent).
		Int("buckets_failed", summary.BucketsFailed).
		Int("commit_failures", summary.CommitFailures).
		Msg("tick finished")

	return nil
}

func runClear(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}

	deleted, err := store.Clear(c.Context)
	if err != nil {
		return err
	}

	logger.Log.Info().Int64("deleted", deleted).Msg("reminders cleared")
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "remind",
		Usage: "Run stockout reminder maintenance jobs",
		Commands: []*cli.Command{
			{
				Name:   "tick",
				Usage:  "Evaluate all reminders against today and dispatch due notifications",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runTick,
			},
			{
				Name:   "clear",
				Usage:  "Delete all stored reminders",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runClear,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("remind command failed")
	}
}
